package language

// Built-in language codes.
const (
	English    = "English"
	German     = "German"
	French     = "French"
	Spanish    = "Spanish"
	Italian    = "Italian"
	Portuguese = "Portuguese"
	Dutch      = "Dutch"
	Polish     = "Polish"
	Swedish    = "Swedish"
)

var builtinOrder = []string{English, German, French, Spanish, Italian, Portuguese, Dutch, Polish, Swedish}

// BuiltinNames returns every built-in language code.
func BuiltinNames() []string {
	out := make([]string, len(builtinOrder))
	copy(out, builtinOrder)
	return out
}

var builtinStopwords = map[string][]string{
	English: {
		"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any",
		"are", "as", "at", "be", "because", "been", "before", "being", "below", "between", "both",
		"but", "by", "can", "could", "did", "do", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "he", "her", "here", "hers",
		"him", "his", "how", "i", "if", "in", "into", "is", "it", "its", "just", "may", "me",
		"might", "more", "most", "must", "my", "no", "nor", "not", "now", "of", "off", "on",
		"once", "only", "or", "other", "our", "out", "over", "own", "same", "shall", "she",
		"should", "so", "some", "such", "than", "that", "the", "their", "them", "then", "there",
		"these", "they", "this", "those", "through", "to", "too", "under", "until", "up", "very",
		"was", "we", "were", "what", "when", "where", "which", "while", "who", "whom", "why",
		"will", "with", "would", "you", "your",
	},
	German: {
		"aber", "alle", "als", "also", "am", "an", "auch", "auf", "aus", "bei", "bin", "bis",
		"da", "das", "dass", "dem", "den", "der", "des", "die", "doch", "du", "ein", "eine",
		"einem", "einen", "einer", "es", "für", "hat", "ich", "ihr", "im", "in", "ist", "ja",
		"kann", "mit", "nach", "nicht", "noch", "nur", "oder", "sich", "sie", "sind", "so",
		"über", "um", "und", "uns", "von", "vor", "war", "was", "wenn", "wie", "wir", "wird",
		"zu", "zum", "zur",
	},
	French: {
		"au", "aux", "avec", "ce", "ces", "dans", "de", "des", "du", "elle", "en", "est", "et",
		"eux", "il", "ils", "je", "la", "le", "les", "leur", "lui", "ma", "mais", "me", "mes",
		"moi", "mon", "ne", "nos", "notre", "nous", "on", "ou", "où", "par", "pas", "pour",
		"qu", "que", "qui", "sa", "se", "ses", "son", "sur", "ta", "te", "tes", "toi", "ton",
		"tu", "un", "une", "vos", "votre", "vous",
	},
	Spanish: {
		"al", "algo", "como", "con", "de", "del", "el", "ella", "ellos", "en", "entre", "era",
		"es", "esta", "este", "fue", "ha", "hay", "la", "las", "le", "les", "lo", "los", "más",
		"me", "mi", "muy", "no", "nos", "o", "para", "pero", "por", "que", "se", "ser", "si",
		"sin", "sobre", "su", "sus", "también", "te", "tu", "un", "una", "y", "ya", "yo",
	},
	Italian: {
		"a", "al", "alla", "anche", "che", "chi", "con", "da", "dal", "dei", "del", "della",
		"di", "e", "è", "gli", "ha", "i", "il", "in", "io", "la", "le", "lo", "ma", "mi", "ne",
		"nel", "nella", "non", "o", "per", "più", "se", "si", "su", "sono", "tra", "un", "una",
		"uno",
	},
	Portuguese: {
		"a", "ao", "as", "com", "como", "da", "das", "de", "do", "dos", "e", "é", "ela", "ele",
		"em", "entre", "era", "eu", "foi", "há", "isso", "já", "mais", "mas", "me", "na", "não",
		"nas", "no", "nos", "o", "os", "ou", "para", "pela", "pelo", "por", "que", "se", "sem",
		"seu", "sua", "também", "um", "uma",
	},
	Dutch: {
		"aan", "al", "als", "bij", "dan", "dat", "de", "die", "dit", "door", "een", "en", "er",
		"het", "hij", "hoe", "ik", "in", "is", "je", "maar", "met", "naar", "niet", "nog", "of",
		"om", "ook", "op", "over", "te", "tot", "uit", "van", "voor", "was", "wat", "we", "wel",
		"wij", "zijn", "zo",
	},
	Polish: {
		"a", "aby", "ale", "bo", "by", "być", "co", "czy", "dla", "do", "i", "ich", "ja", "jak",
		"jest", "już", "na", "nie", "o", "od", "po", "pod", "przez", "się", "ta", "tak",
		"te", "to", "tu", "w", "we", "z", "za", "że",
	},
	Swedish: {
		"att", "av", "de", "den", "det", "du", "en", "ett", "för", "har", "i", "jag", "med",
		"men", "när", "och", "om", "på", "som", "så", "till", "var", "vi", "är",
	},
}
