package params

var fontTable = [...]string{
	"'Segoe UI', Tahoma, Geneva, Verdana, sans-serif",
	"Arial, 'Helvetica Neue', Helvetica, sans-serif",
	"'Calibri', 'Segoe UI', sans-serif",
	"'Times New Roman', Times, serif",
	"'Georgia', 'Times New Roman', serif",
	"Verdana, Geneva, sans-serif",
	"Tahoma, Geneva, sans-serif",
	"'Trebuchet MS', 'Segoe UI', sans-serif",
	"'Courier New', Courier, monospace",
	"Consolas, 'Courier New', monospace",
}

var fontLabels = map[string]int{
	"Segoe UI":        0,
	"Arial":           1,
	"Calibri":         2,
	"Times New Roman": 3,
	"Georgia":         4,
	"Verdana":         5,
	"Tahoma":          6,
	"Trebuchet MS":    7,
	"Courier New":     8,
	"Consolas":        9,
}

// FontCount is the number of slots in the font table.
const FontCount = len(fontTable)

// FontFamily returns the family chain for index, falling back to slot 0.
func FontFamily(index int) string {
	if index < 0 || index >= FontCount {
		return fontTable[0]
	}
	return fontTable[index]
}

// FontFamilies returns a copy of the font table.
func FontFamilies() []string {
	out := make([]string, FontCount)
	copy(out, fontTable[:])
	return out
}
