package rule

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// irregular past tense forms. Anything missing gets the regular -ed form.
var irregularPast = map[string]string{
	"arise": "arose", "awake": "awoke", "be": "was", "bear": "bore", "beat": "beat",
	"become": "became", "begin": "began", "bind": "bound", "bite": "bit", "blow": "blew",
	"break": "broke", "bring": "brought", "build": "built", "buy": "bought", "catch": "caught",
	"choose": "chose", "come": "came", "cost": "cost", "cut": "cut", "dig": "dug",
	"do": "did", "draw": "drew", "drink": "drank", "drive": "drove", "eat": "ate",
	"fall": "fell", "feed": "fed", "feel": "felt", "fight": "fought", "find": "found",
	"flee": "fled", "fly": "flew", "forbid": "forbade", "foresee": "foresaw", "forget": "forgot",
	"forgive": "forgave", "freeze": "froze", "get": "got", "give": "gave", "go": "went",
	"grow": "grew", "hang": "hung", "have": "had", "hear": "heard", "hide": "hid",
	"hit": "hit", "hold": "held", "hurt": "hurt", "keep": "kept", "know": "knew",
	"lay": "laid", "lead": "led", "leave": "left", "lend": "lent", "let": "let",
	"light": "lit", "lose": "lost", "make": "made", "mean": "meant", "meet": "met",
	"mislead": "misled", "overcome": "overcame", "pay": "paid", "put": "put", "read": "read",
	"ride": "rode", "ring": "rang", "rise": "rose", "run": "ran", "say": "said",
	"see": "saw", "seek": "sought", "sell": "sold", "send": "sent", "set": "set",
	"shake": "shook", "shine": "shone", "shoot": "shot", "shut": "shut", "sing": "sang",
	"sink": "sank", "sit": "sat", "sleep": "slept", "slide": "slid", "speak": "spoke",
	"spend": "spent", "split": "split", "spread": "spread", "stand": "stood", "steal": "stole",
	"stick": "stuck", "sting": "stung", "strike": "struck", "swear": "swore", "sweep": "swept",
	"swim": "swam", "swing": "swung", "take": "took", "teach": "taught", "tear": "tore",
	"tell": "told", "think": "thought", "throw": "threw", "undergo": "underwent", "understand": "understood",
	"undertake": "undertook", "uphold": "upheld", "wake": "woke", "wear": "wore", "win": "won",
	"withdraw": "withdrew", "withstand": "withstood", "write": "wrote",
}

var irregularThird = map[string]string{
	"be":   "is",
	"have": "has",
	"do":   "does",
	"go":   "goes",
}

func isVowel(r byte) bool {
	return strings.IndexByte("aeiou", r) >= 0
}

func vowelGroups(w string) int {
	n := 0
	prev := false
	for i := 0; i < len(w); i++ {
		v := isVowel(w[i])
		if v && !prev {
			n++
		}
		prev = v
	}
	return n
}

// PastTense returns the simple past of a base form verb.
func PastTense(verb string) string {
	w := strings.ToLower(verb)
	if past, ok := irregularPast[w]; ok {
		return matchCase(verb, past)
	}

	n := len(w)
	switch {
	case n == 0:
		return verb
	case strings.HasSuffix(w, "e"):
		return verb + "d"
	case n > 1 && w[n-1] == 'y' && !isVowel(w[n-2]):
		return verb[:n-1] + "ied"
	case n >= 3 && vowelGroups(w) == 1 && !isVowel(w[n-3]) && isVowel(w[n-2]) && strings.IndexByte("bdgklmnprt", w[n-1]) >= 0:
		// stop, plan, ship
		return verb + verb[n-1:] + "ed"
	}

	return verb + "ed"
}

// ThirdSingular returns the third person singular present of a base form
// verb.
func ThirdSingular(verb string) string {
	w := strings.ToLower(verb)
	if f, ok := irregularThird[w]; ok {
		return matchCase(verb, f)
	}

	n := len(w)
	switch {
	case n == 0:
		return verb
	case strings.HasSuffix(w, "s"), strings.HasSuffix(w, "x"), strings.HasSuffix(w, "z"),
		strings.HasSuffix(w, "ch"), strings.HasSuffix(w, "sh"), strings.HasSuffix(w, "o"):
		return verb + "es"
	case n > 1 && w[n-1] == 'y' && !isVowel(w[n-2]):
		return verb[:n-1] + "ies"
	}

	return verb + "s"
}

func matchCase(orig, form string) string {
	if orig != "" && orig[0] >= 'A' && orig[0] <= 'Z' {
		return capitalize(form)
	}
	return form
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

func lowerFirst(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToLower(r)) + w[size:]
}
