// Package books holds the canonical 66-book table and the registry that
// resolves user-typed book names to it.
package books

// UnknownOrder is the order index reported for books the registry does not
// know. It sorts after every canonical book.
const UnknownOrder = 999

// Book is one canonical book of the corpus.
type Book struct {
	Name   string `json:"name"`   // canonical full name, e.g. "1 Samuel"
	Abbrev string `json:"abbrev"` // primary abbreviation, e.g. "1Sa"
	OSIS   string `json:"osis"`   // OSIS book id, e.g. "1Sam"
	Order  int    `json:"order"`  // 1..66
}

// canonical lists the books in canonical order. Order is assigned from the
// slice position by Canonical.
var canonical = []Book{
	{Name: "Genesis", Abbrev: "Gen", OSIS: "Gen"},
	{Name: "Exodus", Abbrev: "Exo", OSIS: "Exod"},
	{Name: "Leviticus", Abbrev: "Lev", OSIS: "Lev"},
	{Name: "Numbers", Abbrev: "Num", OSIS: "Num"},
	{Name: "Deuteronomy", Abbrev: "Deu", OSIS: "Deut"},
	{Name: "Joshua", Abbrev: "Jos", OSIS: "Josh"},
	{Name: "Judges", Abbrev: "Jdg", OSIS: "Judg"},
	{Name: "Ruth", Abbrev: "Rut", OSIS: "Ruth"},
	{Name: "1 Samuel", Abbrev: "1Sa", OSIS: "1Sam"},
	{Name: "2 Samuel", Abbrev: "2Sa", OSIS: "2Sam"},
	{Name: "1 Kings", Abbrev: "1Ki", OSIS: "1Kgs"},
	{Name: "2 Kings", Abbrev: "2Ki", OSIS: "2Kgs"},
	{Name: "1 Chronicles", Abbrev: "1Ch", OSIS: "1Chr"},
	{Name: "2 Chronicles", Abbrev: "2Ch", OSIS: "2Chr"},
	{Name: "Ezra", Abbrev: "Ezr", OSIS: "Ezra"},
	{Name: "Nehemiah", Abbrev: "Neh", OSIS: "Neh"},
	{Name: "Esther", Abbrev: "Est", OSIS: "Esth"},
	{Name: "Job", Abbrev: "Job", OSIS: "Job"},
	{Name: "Psalms", Abbrev: "Psa", OSIS: "Ps"},
	{Name: "Proverbs", Abbrev: "Pro", OSIS: "Prov"},
	{Name: "Ecclesiastes", Abbrev: "Ecc", OSIS: "Eccl"},
	{Name: "Song of Songs", Abbrev: "Son", OSIS: "Song"},
	{Name: "Isaiah", Abbrev: "Isa", OSIS: "Isa"},
	{Name: "Jeremiah", Abbrev: "Jer", OSIS: "Jer"},
	{Name: "Lamentations", Abbrev: "Lam", OSIS: "Lam"},
	{Name: "Ezekiel", Abbrev: "Eze", OSIS: "Ezek"},
	{Name: "Daniel", Abbrev: "Dan", OSIS: "Dan"},
	{Name: "Hosea", Abbrev: "Hos", OSIS: "Hos"},
	{Name: "Joel", Abbrev: "Joe", OSIS: "Joel"},
	{Name: "Amos", Abbrev: "Amo", OSIS: "Amos"},
	{Name: "Obadiah", Abbrev: "Oba", OSIS: "Obad"},
	{Name: "Jonah", Abbrev: "Jon", OSIS: "Jonah"},
	{Name: "Micah", Abbrev: "Mic", OSIS: "Mic"},
	{Name: "Nahum", Abbrev: "Nah", OSIS: "Nah"},
	{Name: "Habakkuk", Abbrev: "Hab", OSIS: "Hab"},
	{Name: "Zephaniah", Abbrev: "Zep", OSIS: "Zeph"},
	{Name: "Haggai", Abbrev: "Hag", OSIS: "Hag"},
	{Name: "Zechariah", Abbrev: "Zec", OSIS: "Zech"},
	{Name: "Malachi", Abbrev: "Mal", OSIS: "Mal"},
	{Name: "Matthew", Abbrev: "Mat", OSIS: "Matt"},
	{Name: "Mark", Abbrev: "Mar", OSIS: "Mark"},
	{Name: "Luke", Abbrev: "Luk", OSIS: "Luke"},
	{Name: "John", Abbrev: "Joh", OSIS: "John"},
	{Name: "Acts", Abbrev: "Act", OSIS: "Acts"},
	{Name: "Romans", Abbrev: "Rom", OSIS: "Rom"},
	{Name: "1 Corinthians", Abbrev: "1Co", OSIS: "1Cor"},
	{Name: "2 Corinthians", Abbrev: "2Co", OSIS: "2Cor"},
	{Name: "Galatians", Abbrev: "Gal", OSIS: "Gal"},
	{Name: "Ephesians", Abbrev: "Eph", OSIS: "Eph"},
	{Name: "Philippians", Abbrev: "Phi", OSIS: "Phil"},
	{Name: "Colossians", Abbrev: "Col", OSIS: "Col"},
	{Name: "1 Thessalonians", Abbrev: "1Th", OSIS: "1Thess"},
	{Name: "2 Thessalonians", Abbrev: "2Th", OSIS: "2Thess"},
	{Name: "1 Timothy", Abbrev: "1Ti", OSIS: "1Tim"},
	{Name: "2 Timothy", Abbrev: "2Ti", OSIS: "2Tim"},
	{Name: "Titus", Abbrev: "Tit", OSIS: "Titus"},
	{Name: "Philemon", Abbrev: "Phm", OSIS: "Phlm"},
	{Name: "Hebrews", Abbrev: "Heb", OSIS: "Heb"},
	{Name: "James", Abbrev: "Jas", OSIS: "Jas"},
	{Name: "1 Peter", Abbrev: "1Pe", OSIS: "1Pet"},
	{Name: "2 Peter", Abbrev: "2Pe", OSIS: "2Pet"},
	{Name: "1 John", Abbrev: "1Jo", OSIS: "1John"},
	{Name: "2 John", Abbrev: "2Jo", OSIS: "2John"},
	{Name: "3 John", Abbrev: "3Jo", OSIS: "3John"},
	{Name: "Jude", Abbrev: "Jde", OSIS: "Jude"},
	{Name: "Revelation", Abbrev: "Rev", OSIS: "Rev"},
}

// Canonical returns a fresh copy of the canonical book table with Order set.
func Canonical() []Book {
	out := make([]Book, len(canonical))
	for i, b := range canonical {
		b.Order = i + 1
		out[i] = b
	}
	return out
}
