package levels

// classicLayout is the walled arena with a grass ledge under the exit.
// All built-in levels use it; override files are how levels differ.
var classicLayout = []string{
	"11111111111111111111",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000001",
	"10000000000000000081",
	"10000000000000000221",
	"10000000000000000001",
	"10000000000000000001",
	"22222222222222222222",
}

var builtinLayouts = map[int][]string{
	1: classicLayout,
	2: classicLayout,
	3: classicLayout,
	4: classicLayout,
	5: classicLayout,
	6: classicLayout,
	7: classicLayout,
}

// Builtin returns a fresh copy of the built-in grid for level n.
// Levels outside 1..MaxLevel get an empty grid.
func Builtin(n int) Grid {
	layout, ok := builtinLayouts[n]
	if !ok {
		return EmptyGrid()
	}
	g, err := ParseASCII(layout)
	if err != nil {
		// Layouts are compiled in; a failure here is a programming error.
		panic(err)
	}
	return g
}
