package service

// Stop words are compared after Fold, so umlauts appear as digraphs.
var stopWords = []string{
	// German articles, prepositions, conjunctions
	"der", "die", "das", "den", "dem", "des", "ein", "eine", "eines", "einem", "einen", "einer",
	"fuer", "mit", "von", "und", "oder", "bei", "auf", "nach", "ueber", "unter", "aus", "bis",
	"pro", "als", "inkl", "exkl", "max", "min", "per", "zur", "zum", "ins", "vom", "ohne",
	"auch", "sich", "noch", "wenn", "muss", "darf", "resp", "bzw",
	// German generic terms
	"kauf", "miete", "tag", "jahr", "monate", "stueck", "set", "alle", "nur",
	"wird", "ist", "kann", "sind", "werden", "wurde", "hat", "haben",
	"steril", "unsteril", "sterile", "non",
	"diverse", "divers", "diversi",
	"gross", "klein", "lang", "kurz",
	"position", "definierte", "einstellbare",
	// French
	"les", "des", "pour", "avec", "par", "une", "dans", "sur", "qui", "que",
	"achat", "location", "piece", "sans",
	// Italian
	"acquisto", "noleggio", "pezzo", "senza",
	// English
	"the", "for", "and", "with",
	// generic product terms
	"material", "produkt", "products", "product", "medical", "device",
	"system", "systeme", "systems", "geraet", "geraete", "appareil",
	// shared by screws, stockings, catheters, ...
	"compression", "compressione", "kompression",
	"verlaengerung", "extension", "estensione", "prolongation",
	"silikon", "silicone",
	// surgical instruments
	"ecarteur", "divaricatore", "retraktor",
}

// DefaultStopWords returns a copy of the built-in list.
func DefaultStopWords() []string {
	out := make([]string, len(stopWords))
	copy(out, stopWords)
	return out
}
