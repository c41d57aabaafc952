package textutil

import "strings"

var cyrillicLower = []struct {
	r     rune
	latin string
}{
	{'а', "a"}, {'б', "b"}, {'в', "v"}, {'г', "g"}, {'д', "d"},
	{'е', "e"}, {'ё', "e"}, {'ж', "j"}, {'з', "z"}, {'и', "i"},
	{'й', "j"}, {'к', "k"}, {'л', "l"}, {'м', "m"}, {'н', "n"},
	{'о', "o"}, {'п', "p"}, {'р', "r"}, {'с', "s"}, {'т', "t"},
	{'у', "u"}, {'ф', "f"}, {'х', "h"}, {'ц', "ts"}, {'ч', "ch"},
	{'ш', "sh"}, {'щ', "sch"}, {'ъ', ""}, {'ы', "y"}, {'ь', ""},
	{'э', "e"}, {'ю', "yu"}, {'я', "ya"}, {'є', "je"}, {'і', "i"},
	{'ї', "ji"}, {'ґ', "g"},
}

// translit maps both letter cases; uppercase letters map to the uppercased
// Latin substring.
var translit = buildTranslit()

func buildTranslit() map[rune]string {
	table := make(map[rune]string, len(cyrillicLower)*2)
	for _, entry := range cyrillicLower {
		table[entry.r] = entry.latin
		table[[]rune(strings.ToUpper(string(entry.r)))[0]] = strings.ToUpper(entry.latin)
	}
	return table
}
