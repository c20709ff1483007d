package intake

import (
	"fmt"
	"strings"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/common"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"

	frontlineYes     = "Yes"
	frontlineNo      = "No"
	frontlineNotSure = "Not sure"

	meetingAttended = "Yes"
)

// Defaults used by the intake daemon.
const (
	DefaultIDPrefix = "HIF-"
	DefaultIDWidth  = 3
	DefaultTimeZone = "America/Chicago"
)

// Normalizer flattens submissions into records. It holds no mutable state
// and is safe for concurrent use; serializing appends is the caller's job.
type Normalizer struct {
	schema   *Schema
	location *time.Location
	prefix   string
	width    int
}

// NewNormalizer builds a Normalizer that renders dates and timestamps in the
// named IANA time zone.
func NewNormalizer(schema *Schema, timeZone, idPrefix string, idWidth int) (*Normalizer, error) {
	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", common.ErrInvalidTimeZone, timeZone, err)
	}
	return &Normalizer{schema: schema, location: loc, prefix: idPrefix, width: idWidth}, nil
}

// Normalize flattens sub into a Record. priorRowCount is the
// header-inclusive row count of the records table before this append.
// Missing answers become empty strings or false.
func (n *Normalizer) Normalize(sub Submission, priorRowCount int) Record {
	filmCode, filmTitle := ParseFilmChoice(n.text(sub, qFilm))

	equipment := n.checklist(sub, clEquipment)
	physical := n.checklist(sub, clPhysical)
	sensory := n.checklist(sub, clSensory)

	return Record{
		IntakeID:              AllocateID(priorRowCount, n.prefix, n.width),
		Timestamp:             sub.SubmittedAt.In(n.location).Format(timestampLayout),
		EmailAddress:          sub.RespondentEmail,
		OrganizationName:      n.text(sub, qOrganizationName),
		VenueAddress:          n.text(sub, qVenueAddress),
		Capacity:              n.text(sub, qCapacity),
		VenueDescription:      n.text(sub, qVenueDescription),
		FrontlineCommunity:    normalizeFrontline(n.text(sub, qFrontlineCommunity)),
		Contact1Name:          n.text(sub, qContact1Name),
		Contact1Role:          n.text(sub, qContact1Role),
		Contact1Email:         n.text(sub, qContact1Email),
		Contact1Phone:         n.text(sub, qContact1Phone),
		Contact2Name:          n.text(sub, qContact2Name),
		Contact2Role:          n.text(sub, qContact2Role),
		Contact2Email:         n.text(sub, qContact2Email),
		Contact2Phone:         n.text(sub, qContact2Phone),
		AVContactName:         n.text(sub, qAVContactName),
		AVContactEmail:        n.text(sub, qAVContactEmail),
		MarketingContactName:  n.text(sub, qMarketingContactName),
		MarketingContactEmail: n.text(sub, qMarketingContactEmail),
		FilmID:                filmCode,
		FilmTitle:             filmTitle,
		ScreeningDate:         n.text(sub, qScreeningDate),
		ScreeningTime:         n.text(sub, qScreeningTime),
		FilmNotes:             n.text(sub, qFilmNotes),
		HasProjector:          equipment["projector"],
		HasScreen:             equipment["screen"],
		HasSound:              equipment["sound"],
		HasComputer:           equipment["computer"],
		HasWiFi:               equipment["wifi"],
		HasMicrophone:         equipment["microphone"],
		HasAVLead:             equipment["av_lead"],
		AVNotes:               n.text(sub, qAVNotes),
		ADAWheelchair:         physical["wheelchair"],
		ADAElevator:           physical["elevator"],
		ADARestrooms:          physical["restrooms"],
		ADAParking:            physical["parking"],
		ADASeating:            physical["seating"],
		ADATransit:            physical["transit"],
		ADACaptions:           sensory["captions"],
		ADAHearingLoop:        sensory["hearing_loop"],
		ADALighting:           sensory["lighting"],
		ADASignage:            sensory["signage"],
		AccessibilityNotes:    n.text(sub, qAccessibilityNotes),
		PromoChannels:         n.list(sub, qPromotionChannels),
		PromoNotes:            n.text(sub, qPromotionNotes),
		MarketingAssetURL:     n.text(sub, qMarketingAssetURL),
		Motivation:            n.text(sub, qMotivation),
		AdditionalComments:    n.text(sub, qAdditionalComments),
		HostMeetingAttended:   n.text(sub, qHostMeetingAttended) == meetingAttended,
	}
}

// text renders the answer to a question, or "" when unanswered.
func (n *Normalizer) text(sub Submission, key string) string {
	v, ok := sub.Answer(n.schema.label(key))
	if !ok {
		return ""
	}
	return v.Text(n.location)
}

// list keeps a multi-select answer as one ", "-joined string so the import
// can map it onto a multi-select field.
func (n *Normalizer) list(sub Submission, key string) string {
	v, ok := sub.Answer(n.schema.label(key))
	if !ok {
		return ""
	}
	return strings.Join(v.Items(), listSeparator)
}

func (n *Normalizer) checklist(sub Submission, key string) map[string]bool {
	c := n.schema.Checklists[key]
	v, ok := sub.Answer(c.Question)
	if !ok {
		return c.Split(MultiSelect())
	}
	return c.Split(v)
}

func normalizeFrontline(answer string) string {
	switch answer {
	case frontlineYes:
		return frontlineYes
	case frontlineNo:
		return frontlineNo
	}
	return frontlineNotSure
}
