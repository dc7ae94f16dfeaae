package assembler

import (
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/apperrors"
	"github.com/Garvgupta06/ai-podcast-script-generator/internal/segmenter"
)

// SpeakerFormat determines how segment text is distributed into dialogue turns.
type SpeakerFormat string

const (
	// FormatSingleHost produces one host turn per segment.
	FormatSingleHost SpeakerFormat = "single_host"
	// FormatInterview produces host/guest exchanges.
	FormatInterview SpeakerFormat = "interview"
	// FormatMultiHost produces host/co-host exchanges.
	FormatMultiHost SpeakerFormat = "multi_host"
)

// SpeakerConfig names the people on the show for a given format.
type SpeakerConfig struct {
	Format     SpeakerFormat `json:"format"`
	HostName   string        `json:"host_name"`
	GuestName  string        `json:"guest_name,omitempty"`
	CoHostName string        `json:"co_host_name,omitempty"`
}

// Validate checks that the format has the speakers it requires.
func (s *SpeakerConfig) Validate() error {
	switch s.Format {
	case FormatSingleHost:
		return nil
	case FormatInterview:
		if s.GuestName == "" {
			return apperrors.NewValidation("interview format requires a guest name")
		}
	case FormatMultiHost:
		if s.CoHostName == "" {
			return apperrors.NewValidation("multi_host format requires a co-host name")
		}
	default:
		return apperrors.NewValidation("unknown speaker format %q", s.Format)
	}
	return nil
}

// Normalized returns the config with an unrecognized or incomplete format
// replaced by the permissive single_host default. This is the single place
// where the default is applied.
func (s SpeakerConfig) Normalized() (SpeakerConfig, bool) {
	if err := s.Validate(); err != nil {
		s.Format = FormatSingleHost
		return s, true
	}
	return s, false
}

// ShowConfig describes the show a script is assembled for.
type ShowConfig struct {
	ShowName     string        `json:"show_name"`
	HostName     string        `json:"host_name"`
	Tagline      string        `json:"tagline"`
	EpisodeTitle string        `json:"episode_title,omitempty"`
	Speakers     SpeakerConfig `json:"speakers"`
}

// MusicCue marks where production should place music or a sound effect.
type MusicCue struct {
	Type            string `json:"type"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Timing          string `json:"timing,omitempty"`
}

// Intro is the scripted opening of the episode.
type Intro struct {
	Script            string     `json:"script"`
	EstimatedDuration float64    `json:"estimated_duration"`
	MusicCues         []MusicCue `json:"music_cues"`
}

// ContentTurn is one speaker's scripted turn covering (part of) a segment.
type ContentTurn struct {
	SegmentID         int                   `json:"segment_id"`
	Type              segmenter.SegmentType `json:"type"`
	Script            string                `json:"script"`
	EstimatedDuration float64               `json:"estimated_duration"`
	Keywords          []string              `json:"keywords"`
	ProductionNotes   []string              `json:"production_notes,omitempty"`
}

// Transition bridges two adjacent segments.
type Transition struct {
	BetweenSegmentIDs [2]int  `json:"between_segment_ids"`
	Script            string  `json:"script"`
	EstimatedDuration float64 `json:"estimated_duration"`
	AudioCue          string  `json:"audio_cue"`
}

// Outro is the scripted closing of the episode.
type Outro struct {
	Script            string     `json:"script"`
	EstimatedDuration float64    `json:"estimated_duration"`
	MusicCues         []MusicCue `json:"music_cues"`
}

// TimestampEntry points listeners at a topic within the episode.
type TimestampEntry struct {
	Time        string `json:"time"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// Resource is a suggested further-reading link for the show notes.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ShowNotes is the derived textual summary artifact accompanying the script.
type ShowNotes struct {
	Summary        string           `json:"summary"`
	KeyPoints      []string         `json:"key_points"`
	Keywords       []string         `json:"keywords"`
	Timestamps     []TimestampEntry `json:"timestamps"`
	SocialSnippets []string         `json:"social_snippets"`
	Resources      []Resource       `json:"resources"`
}

// Metadata summarizes the assembled script.
type Metadata struct {
	EpisodeTitle         string        `json:"episode_title"`
	TotalDurationMinutes float64       `json:"total_duration_minutes"`
	SegmentCount         int           `json:"segment_count"`
	TransitionCount      int           `json:"transition_count"`
	SpeakerFormat        SpeakerFormat `json:"speaker_format"`
	LLMEnhanced          bool          `json:"llm_enhanced"`
}

// ScriptPackage is the complete assembled episode script. It is constructed
// once per request and never mutated after return.
type ScriptPackage struct {
	Intro       Intro         `json:"intro"`
	MainContent []ContentTurn `json:"main_content"`
	Transitions []Transition  `json:"transitions"`
	Outro       Outro         `json:"outro"`
	ShowNotes   ShowNotes     `json:"show_notes"`
	Metadata    Metadata      `json:"metadata"`
}
