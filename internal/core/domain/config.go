package domain

// Config is the resolved set of run parameters
type Config struct {
	Query         string
	Source        string
	CaseSensitive bool
}
