package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"github.com/dixieflatline76/Reel/config"
	"github.com/dixieflatline76/Reel/util/log"
)

// EULAPreferenceKey is the preference key holding the EULA acceptance record.
const EULAPreferenceKey = "eula_acceptance"

// EULAAcceptance is the record stored once the agreement is accepted.
type EULAAcceptance struct {
	AppVersion string    `json:"app_version"`
	AcceptedAt time.Time `json:"accepted_at"`
	Hash       string    `json:"hash"`
}

// EULA tracks acceptance of an agreement text on this machine. Accepting it once
// covers every app version until the text itself changes.
type EULA struct {
	Text  string
	prefs fyne.Preferences
	now   func() time.Time
}

// NewEULA creates an EULA for text backed by prefs.
func NewEULA(text string, prefs fyne.Preferences) *EULA {
	return &EULA{Text: text, prefs: prefs, now: time.Now}
}

// Accepted reports whether the current text was accepted on this machine.
func (e *EULA) Accepted() bool {
	data := e.prefs.StringWithFallback(EULAPreferenceKey, "")
	if data == "" {
		return false
	}

	var rec EULAAcceptance
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		log.Println("Error parsing EULA acceptance record:", err)
		return false
	}
	return rec.Hash == e.hash()
}

// Accept records acceptance of the current text.
func (e *EULA) Accept() {
	rec := EULAAcceptance{
		AppVersion: config.AppVersion,
		AcceptedAt: e.now().UTC(),
		Hash:       e.hash(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("Error encoding EULA acceptance: %v", err)
		return
	}
	e.prefs.SetString(EULAPreferenceKey, string(data))
}

// hash binds the record to the agreement text and the machine it was accepted on.
func (e *EULA) hash() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown-host"
	}
	sum := sha256.Sum256([]byte(e.Text + "\x00" + host))
	return hex.EncodeToString(sum[:])
}
