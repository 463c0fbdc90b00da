package keys

// Defaults lists the parameters missing from the stock GRIB definitions.
// Repeats are harmless; they are removed when the list is parsed.
var Defaults = []string{
	"0:16:3",
	"0:2:220",
	"0:2:221",
	"0:16:198",
	"0:7:199",
	"0:7:200",
	"0:7:199",
	"0:7:200",
	"0:7:199",
	"0:7:200",
	"0:1:74",
	"0:2:222",
	"0:2:223",
	"0:1:227",
	"0:1:242",
	"3:192:1",
	"3:192:2",
	"3:192:7",
	"3:192:8",
	"0:16:196",
	"0:16:195",
	"0:16:195",
	"0:16:195",
	"0:3:198",
	"0:16:195",
	"0:17:192",
	"2:0:194",
	"0:1:8",
	"0:1:225",
	"0:7:6",
	"0:7:7",
	"0:6:1",
	"0:4:200",
	"0:4:201",
	"0:7:193",
	"0:7:6",
	"0:7:7",
	"0:7:6",
	"0:7:7",
	"0:7:6",
	"0:7:7",
	"0:3:200",
}
