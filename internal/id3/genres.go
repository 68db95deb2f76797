package id3

import (
	"fmt"
	"strings"
)

// genreNames is the standard ID3v1 genre table, indexed by the genre byte.
// TCON frames may reference it numerically as "(17)" or "17".
var genreNames = []string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient",
	"Trip-Hop", "Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical",
	"Instrumental", "Acid", "House", "Game", "Sound Clip", "Gospel", "Noise",
	"AlternRock", "Bass", "Soul", "Punk", "Space", "Meditative",
	"Instrumental Pop", "Instrumental Rock", "Ethnic", "Gothic", "Darkwave",
	"Techno-Industrial", "Electronic", "Pop-Folk", "Eurodance", "Dream",
	"Southern Rock", "Comedy", "Cult", "Gangsta", "Top 40", "Christian Rap",
	"Pop/Funk", "Jungle", "Native American", "Cabaret", "New Wave",
	"Psychadelic", "Rave", "Showtunes", "Trailer", "Lo-Fi", "Tribal",
	"Acid Punk", "Acid Jazz", "Polka", "Retro", "Musical", "Rock & Roll",
	"Hard Rock",
}

// genreName returns the genre for an ID3v1 genre byte, or "" when the index
// is out of table range (255 conventionally means "none").
func genreName(index int) string {
	if index < 0 || index >= len(genreNames) {
		return ""
	}
	return genreNames[index]
}

// normalizeGenre resolves numeric TCON references like "(17)" or "17" to
// their table names; anything else passes through unchanged.
func normalizeGenre(text string) string {
	ref := text
	if strings.HasPrefix(ref, "(") && strings.HasSuffix(ref, ")") {
		ref = ref[1 : len(ref)-1]
	}
	var index int
	if _, err := fmt.Sscanf(ref, "%d", &index); err == nil && fmt.Sprint(index) == ref {
		if name := genreName(index); name != "" {
			return name
		}
		return ""
	}
	return text
}
