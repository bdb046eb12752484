package tmdb

// Wire types for the subset of TMDB response fields the bot consumes.

type movieRecord struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
	VoteAverage float64 `json:"vote_average"`
	PosterPath  string  `json:"poster_path"`
}

type tvRecord struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
	VoteAverage  float64 `json:"vote_average"`
	PosterPath   string  `json:"poster_path"`
}

type moviePage struct {
	Page       int           `json:"page"`
	Results    []movieRecord `json:"results"`
	TotalPages int           `json:"total_pages"`
}

type tvPage struct {
	Page       int        `json:"page"`
	Results    []tvRecord `json:"results"`
	TotalPages int        `json:"total_pages"`
}

type seasonRecord struct {
	SeasonNumber int    `json:"season_number"`
	AirDate      string `json:"air_date"`
}

type tvDetailsRecord struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	FirstAirDate string         `json:"first_air_date"`
	Popularity   float64        `json:"popularity"`
	VoteAverage  float64        `json:"vote_average"`
	Seasons      []seasonRecord `json:"seasons"`
}

type errorRecord struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func (r movieRecord) toResult() Result {
	return Result{
		ID:         r.ID,
		Name:       r.Title,
		Date:       r.ReleaseDate,
		Popularity: r.Popularity,
		Rating:     r.VoteAverage,
		PosterPath: r.PosterPath,
	}
}

func (r tvRecord) toResult() Result {
	return Result{
		ID:         r.ID,
		Name:       r.Name,
		Date:       r.FirstAirDate,
		Popularity: r.Popularity,
		Rating:     r.VoteAverage,
		PosterPath: r.PosterPath,
	}
}

func movieResults(recs []movieRecord, max int) []Result {
	out := make([]Result, 0, len(recs))
	for _, r := range recs {
		if len(out) >= max {
			break
		}
		out = append(out, r.toResult())
	}
	return out
}

func tvResults(recs []tvRecord, max int) []Result {
	out := make([]Result, 0, len(recs))
	for _, r := range recs {
		if len(out) >= max {
			break
		}
		out = append(out, r.toResult())
	}
	return out
}
