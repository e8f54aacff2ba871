package domain

// WeekInfo is the static week-by-week reference entry shown on the home
// screen. The table is seeded once and read-only afterwards.
type WeekInfo struct {
	Week            int      `json:"week"`
	BabySize        string   `json:"babySize"`
	BabyLength      string   `json:"babyLength"`
	BabyWeight      string   `json:"babyWeight"`
	BabyDevelopment []string `json:"babyDevelopment"`
	MotherChanges   []string `json:"motherChanges"`
	Tips            []string `json:"tips"`
}
