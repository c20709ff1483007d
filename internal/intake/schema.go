package intake

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oneearth-admin/oeff-docs/internal/common"
)

//go:embed schema.yaml
var defaultSchema []byte

// Question keys. The record layout is fixed; only the labels they map to
// come from the schema file.
const (
	qOrganizationName      = "organization_name"
	qVenueAddress          = "venue_address"
	qCapacity              = "capacity"
	qVenueDescription      = "venue_description"
	qFrontlineCommunity    = "frontline_community"
	qContact1Name          = "contact1_name"
	qContact1Role          = "contact1_role"
	qContact1Email         = "contact1_email"
	qContact1Phone         = "contact1_phone"
	qContact2Name          = "contact2_name"
	qContact2Role          = "contact2_role"
	qContact2Email         = "contact2_email"
	qContact2Phone         = "contact2_phone"
	qAVContactName         = "av_contact_name"
	qAVContactEmail        = "av_contact_email"
	qMarketingContactName  = "marketing_contact_name"
	qMarketingContactEmail = "marketing_contact_email"
	qFilm                  = "film"
	qScreeningDate         = "screening_date"
	qScreeningTime         = "screening_time"
	qFilmNotes             = "film_notes"
	qAVNotes               = "av_notes"
	qAccessibilityNotes    = "accessibility_notes"
	qPromotionChannels     = "promotion_channels"
	qPromotionNotes        = "promotion_notes"
	qMarketingAssetURL     = "marketing_asset_url"
	qMotivation            = "motivation"
	qAdditionalComments    = "additional_comments"
	qHostMeetingAttended   = "host_meeting_attended"
)

// Checklist keys and their option keys.
const (
	clEquipment = "equipment"
	clPhysical  = "physical"
	clSensory   = "sensory"
)

var requiredQuestions = []string{
	qOrganizationName, qVenueAddress, qCapacity, qVenueDescription, qFrontlineCommunity,
	qContact1Name, qContact1Role, qContact1Email, qContact1Phone,
	qContact2Name, qContact2Role, qContact2Email, qContact2Phone,
	qAVContactName, qAVContactEmail, qMarketingContactName, qMarketingContactEmail,
	qFilm, qScreeningDate, qScreeningTime, qFilmNotes, qAVNotes, qAccessibilityNotes,
	qPromotionChannels, qPromotionNotes, qMarketingAssetURL, qMotivation,
	qAdditionalComments, qHostMeetingAttended,
}

var requiredOptions = map[string][]string{
	clEquipment: {"projector", "screen", "sound", "computer", "wifi", "microphone", "av_lead"},
	clPhysical:  {"wheelchair", "elevator", "restrooms", "parking", "seating", "transit"},
	clSensory:   {"captions", "hearing_loop", "lighting", "signage"},
}

// Schema maps the fixed record fields to the labels used on the intake form.
type Schema struct {
	Questions  map[string]string    `yaml:"questions"`
	Checklists map[string]Checklist `yaml:"checklists"`
}

// DefaultSchema returns the schema compiled into the binary.
func DefaultSchema() *Schema {
	s, err := ParseSchema(defaultSchema)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSchema reads a schema file. An empty path selects the built-in schema.
func LoadSchema(path string) (*Schema, error) {
	if path == "" {
		return ParseSchema(defaultSchema)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return ParseSchema(data)
}

// ParseSchema decodes and validates a YAML schema. Every question and option
// key the record layout needs must be present.
func ParseSchema(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	for _, key := range requiredQuestions {
		if s.Questions[key] == "" {
			return nil, fmt.Errorf("%w: question %q", common.ErrIncompleteSchema, key)
		}
	}
	for cl, options := range requiredOptions {
		c, ok := s.Checklists[cl]
		if !ok || c.Question == "" {
			return nil, fmt.Errorf("%w: checklist %q", common.ErrIncompleteSchema, cl)
		}
		for _, opt := range options {
			if c.Options[opt] == "" {
				return nil, fmt.Errorf("%w: option %q of checklist %q", common.ErrIncompleteSchema, opt, cl)
			}
		}
	}
	return s, nil
}

func (s *Schema) label(key string) string { return s.Questions[key] }
