package catalogimporter

// itemPayload is the on-disk item catalog document.
type itemPayload struct {
	Game    string       `json:"game"`
	Version string       `json:"version"`
	Source  string       `json:"source"`
	Locale  string       `json:"locale"`
	Items   []itemRecord `json:"items"`
}

type itemRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slot     string `json:"slot"`
	Modifier int    `json:"modifier"`
	Rarity   string `json:"rarity"`
}
