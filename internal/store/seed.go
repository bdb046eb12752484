package store

// Seed lists used when no store file exists yet, or when a set is missing
// from it. Tracked entries are stored lower-cased.
var seedSeries = []string{
	"love death robots",
	"last of us",
	"black mirror",
	"walking dead",
	"severance",
	"you",
	"daredevil: born again",
	"rick & morty",
	"rick and morty",
	"the umbrella academy",
	"the witcher",
	"euphoria",
	"harley quinn",
	"loki",
	"stranger things",
	"arcane",
}

var seedMovies = []string{
	"dune",
	"oppenheimer",
	"barbie",
	"spider-man: across the spider-verse",
	"the marvels",
	"wonka",
	"killers of the flower moon",
	"the hunger games: the ballad of songbirds & snakes",
	"napoleon",
	"the creator",
}
