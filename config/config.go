package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds all configurable engine parameters (§A.3, §6.5).
type Config struct {
	// VariantName selects the ruleset our State/Variant registry builds
	// against (e.g. "No Variant", "6 Suits").
	VariantName string `json:"variant_name"`

	// PlayerNames lists every seat at the table in turn order.
	PlayerNames []string `json:"player_names"`
	// OurPlayerIndex is our own seat within PlayerNames.
	OurPlayerIndex int `json:"our_player_index"`

	// CatchingUp disables note/side-channel emission while replaying a
	// history we've already seen (reconnect/resume).
	CatchingUp bool `json:"catching_up"`

	// EndgameDeadlineMS bounds the endgame solver's search (§4.7, §9
	// Open Question — deadline is configurable rather than hard-coded).
	EndgameDeadlineMS int `json:"endgame_deadline_ms"`
	// MonteCarloEndgame is the Monte-Carlo endgame toggle (§9 Open
	// Question). It is loaded but not read by the endgame solver, whose
	// search is the same whether it is set or not.
	MonteCarloEndgame bool `json:"monte_carlo_endgame"`

	// WSPort is the port the transport listens on when driven over a
	// websocket (§6).
	WSPort int `json:"ws_port"`
	// MaxLatencyMS bounds how long we wait for the driver's action
	// stream before treating the connection as stalled.
	MaxLatencyMS int `json:"max_latency_ms"`
}

// Defaults returns a Config with all default values from the spec.
func Defaults() *Config {
	return &Config{
		VariantName:       "No Variant",
		PlayerNames:       []string{"Alice", "Bob"},
		OurPlayerIndex:    0,
		CatchingUp:        false,
		EndgameDeadlineMS: 1000,
		MonteCarloEndgame: false,
		WSPort:            8080,
		MaxLatencyMS:      500,
	}
}

// Load reads configuration from an optional config.json file, then
// applies environment variable overrides. Fields not set in either
// source retain their default values.
func Load() *Config {
	cfg := Defaults()

	if f, err := os.Open("config.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse config.json: %v", err)
		}
	}

	overrideString(&cfg.VariantName, "VARIANT_NAME")
	overrideInt(&cfg.OurPlayerIndex, "OUR_PLAYER_INDEX")
	overrideBool(&cfg.CatchingUp, "CATCHING_UP")
	overrideInt(&cfg.EndgameDeadlineMS, "ENDGAME_DEADLINE_MS")
	overrideBool(&cfg.MonteCarloEndgame, "MONTE_CARLO_ENDGAME")
	overrideInt(&cfg.WSPort, "WS_PORT")
	overrideInt(&cfg.MaxLatencyMS, "MAX_LATENCY_MS")
	if val := os.Getenv("PLAYER_NAMES"); val != "" {
		cfg.PlayerNames = splitCSV(val)
	}

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*field = b
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
