package hands

// strength is a curated relative-strength table (100 = best, 1 =
// worst). The values are a hand-tuned total order, not a formula;
// duplicates are allowed and only relative comparison is meaningful.
var strength = map[Hand]int{
	// Pairs
	"AA": 100, "KK": 99, "QQ": 98, "JJ": 97, "TT": 96,
	"99": 91, "88": 87, "77": 83, "66": 79, "55": 75,
	"44": 71, "33": 67, "22": 63,

	// Suited broadways
	"AKs": 95, "AQs": 94, "AJs": 92, "ATs": 90, "KQs": 88,
	"KJs": 86, "QJs": 84, "JTs": 82,

	// Offsuit broadways
	"AKo": 93, "AQo": 89, "AJo": 85, "ATo": 81,
	"KQo": 80, "KJo": 78, "KTo": 76, "QJo": 74, "QTo": 72, "JTo": 70,

	// Suited aces and connectors
	"A9s": 80, "A8s": 78, "A7s": 76, "A6s": 74, "A5s": 73,
	"A4s": 72, "A3s": 71, "A2s": 70,
	"T9s": 69, "98s": 68, "87s": 67, "76s": 66, "65s": 65,
	"54s": 64, "K9s": 63, "KTs": 77, "Q9s": 62, "QTs": 75,
	"J9s": 61,

	// Offsuit semi-connected
	"A9o": 60, "A8o": 58, "A7o": 56, "A6o": 54, "A5o": 53,
	"A4o": 52, "A3o": 51, "A2o": 50,
	"K9o": 49, "Q9o": 48, "J9o": 47, "T9o": 46,
	"98o": 45, "87o": 44, "76o": 43, "65o": 42,

	// Weak suited
	"K8s": 55, "K7s": 53, "K6s": 51, "K5s": 49, "K4s": 47, "K3s": 45, "K2s": 43,
	"Q8s": 54, "Q7s": 52, "Q6s": 50, "Q5s": 48, "Q4s": 46, "Q3s": 44, "Q2s": 42,
	"J8s": 53, "J7s": 51, "J6s": 49, "J5s": 47, "J4s": 45, "J3s": 43, "J2s": 41,
	"T8s": 52, "T7s": 50, "T6s": 48, "T5s": 46, "T4s": 44, "T3s": 42, "T2s": 40,
	"97s": 51, "96s": 49, "95s": 47, "94s": 45, "93s": 43, "92s": 41,
	"86s": 50, "85s": 48, "84s": 46, "83s": 44, "82s": 42,
	"75s": 49, "74s": 47, "73s": 45, "72s": 40,
	"64s": 48, "63s": 46, "62s": 44,
	"53s": 47, "52s": 45,
	"43s": 46, "42s": 44,
	"32s": 43,

	// Weak offsuit
	"K8o": 38, "K7o": 36, "K6o": 34, "K5o": 32, "K4o": 30, "K3o": 28, "K2o": 26,
	"Q8o": 37, "Q7o": 35, "Q6o": 33, "Q5o": 31, "Q4o": 29, "Q3o": 27, "Q2o": 25,
	"J8o": 36, "J7o": 34, "J6o": 32, "J5o": 30, "J4o": 28, "J3o": 26, "J2o": 24,
	"T8o": 35, "T7o": 33, "T6o": 31, "T5o": 29, "T4o": 27, "T3o": 25, "T2o": 23,
	"97o": 34, "96o": 32, "95o": 30, "94o": 28, "93o": 26, "92o": 22,
	"86o": 33, "85o": 31, "84o": 29, "83o": 27, "82o": 21,
	"75o": 32, "74o": 30, "73o": 28, "72o": 1,
	"64o": 31, "63o": 29, "62o": 20,
	"54o": 30, "53o": 28, "52o": 19,
	"43o": 29, "42o": 18,
	"32o": 17,
}

const defaultStrength = 50

// Strength returns the curated strength of a hand. Unknown hands get a
// neutral middle value rather than an error, matching how the table is
// used: only for relative comparison, never equality.
func Strength(h Hand) int {
	if s, ok := strength[h]; ok {
		return s
	}
	return defaultStrength
}
