package intake

// Record is one flattened intake row. Field set and order are shared with
// the downstream import, so columns are never added, dropped or reordered
// without updating the consumer.
type Record struct {
	IntakeID              string `json:"Intake_ID"`
	Timestamp             string `json:"Timestamp"`
	EmailAddress          string `json:"Email_Address"`
	OrganizationName      string `json:"Organization_Name"`
	VenueAddress          string `json:"Venue_Address"`
	Capacity              string `json:"Capacity"`
	VenueDescription      string `json:"Venue_Description"`
	FrontlineCommunity    string `json:"Frontline_Community"`
	Contact1Name          string `json:"Contact1_Name"`
	Contact1Role          string `json:"Contact1_Role"`
	Contact1Email         string `json:"Contact1_Email"`
	Contact1Phone         string `json:"Contact1_Phone"`
	Contact2Name          string `json:"Contact2_Name"`
	Contact2Role          string `json:"Contact2_Role"`
	Contact2Email         string `json:"Contact2_Email"`
	Contact2Phone         string `json:"Contact2_Phone"`
	AVContactName         string `json:"AV_Contact_Name"`
	AVContactEmail        string `json:"AV_Contact_Email"`
	MarketingContactName  string `json:"Marketing_Contact_Name"`
	MarketingContactEmail string `json:"Marketing_Contact_Email"`
	FilmID                string `json:"Film_ID"`
	FilmTitle             string `json:"Film_Title"`
	ScreeningDate         string `json:"Screening_Date"`
	ScreeningTime         string `json:"Screening_Time"`
	FilmNotes             string `json:"Film_Notes"`
	HasProjector          bool   `json:"Has_Projector"`
	HasScreen             bool   `json:"Has_Screen"`
	HasSound              bool   `json:"Has_Sound"`
	HasComputer           bool   `json:"Has_Computer"`
	HasWiFi               bool   `json:"Has_WiFi"`
	HasMicrophone         bool   `json:"Has_Microphone"`
	HasAVLead             bool   `json:"Has_AV_Lead"`
	AVNotes               string `json:"AV_Notes"`
	ADAWheelchair         bool   `json:"ADA_Wheelchair"`
	ADAElevator           bool   `json:"ADA_Elevator"`
	ADARestrooms          bool   `json:"ADA_Restrooms"`
	ADAParking            bool   `json:"ADA_Parking"`
	ADASeating            bool   `json:"ADA_Seating"`
	ADATransit            bool   `json:"ADA_Transit"`
	ADACaptions           bool   `json:"ADA_Captions"`
	ADAHearingLoop        bool   `json:"ADA_Hearing_Loop"`
	ADALighting           bool   `json:"ADA_Lighting"`
	ADASignage            bool   `json:"ADA_Signage"`
	AccessibilityNotes    string `json:"Accessibility_Notes"`
	PromoChannels         string `json:"Promo_Channels"`
	PromoNotes            string `json:"Promo_Notes"`
	MarketingAssetURL     string `json:"Marketing_Asset_URL"`
	Motivation            string `json:"Motivation"`
	AdditionalComments    string `json:"Additional_Comments"`
	HostMeetingAttended   bool   `json:"Host_Meeting_Attended"`
}

// Columns is the header row of the records table, in output order.
var Columns = []string{
	"Intake_ID", "Timestamp", "Email_Address",
	"Organization_Name", "Venue_Address", "Capacity",
	"Venue_Description", "Frontline_Community",
	"Contact1_Name", "Contact1_Role", "Contact1_Email", "Contact1_Phone",
	"Contact2_Name", "Contact2_Role", "Contact2_Email", "Contact2_Phone",
	"AV_Contact_Name", "AV_Contact_Email",
	"Marketing_Contact_Name", "Marketing_Contact_Email",
	"Film_ID", "Film_Title", "Screening_Date", "Screening_Time", "Film_Notes",
	"Has_Projector", "Has_Screen", "Has_Sound", "Has_Computer",
	"Has_WiFi", "Has_Microphone", "Has_AV_Lead",
	"AV_Notes",
	"ADA_Wheelchair", "ADA_Elevator", "ADA_Restrooms", "ADA_Parking",
	"ADA_Seating", "ADA_Transit",
	"ADA_Captions", "ADA_Hearing_Loop", "ADA_Lighting", "ADA_Signage",
	"Accessibility_Notes",
	"Promo_Channels", "Promo_Notes", "Marketing_Asset_URL",
	"Motivation", "Additional_Comments", "Host_Meeting_Attended",
}

// Values renders r in column order. Booleans are TRUE or FALSE, which
// spreadsheet and Airtable imports read as checkboxes.
func (r Record) Values() []string {
	return []string{
		r.IntakeID, r.Timestamp, r.EmailAddress,
		r.OrganizationName, r.VenueAddress, r.Capacity,
		r.VenueDescription, r.FrontlineCommunity,
		r.Contact1Name, r.Contact1Role, r.Contact1Email, r.Contact1Phone,
		r.Contact2Name, r.Contact2Role, r.Contact2Email, r.Contact2Phone,
		r.AVContactName, r.AVContactEmail,
		r.MarketingContactName, r.MarketingContactEmail,
		r.FilmID, r.FilmTitle, r.ScreeningDate, r.ScreeningTime, r.FilmNotes,
		flag(r.HasProjector), flag(r.HasScreen), flag(r.HasSound), flag(r.HasComputer),
		flag(r.HasWiFi), flag(r.HasMicrophone), flag(r.HasAVLead),
		r.AVNotes,
		flag(r.ADAWheelchair), flag(r.ADAElevator), flag(r.ADARestrooms), flag(r.ADAParking),
		flag(r.ADASeating), flag(r.ADATransit),
		flag(r.ADACaptions), flag(r.ADAHearingLoop), flag(r.ADALighting), flag(r.ADASignage),
		r.AccessibilityNotes,
		r.PromoChannels, r.PromoNotes, r.MarketingAssetURL,
		r.Motivation, r.AdditionalComments, flag(r.HostMeetingAttended),
	}
}

func flag(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}
