package normalize

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is the region used when a number carries no country code.
const DefaultRegion = "PK"

// Info is offline metadata about a canonical number.
type Info struct {
	Kind        Kind   `json:"kind"`
	Valid       bool   `json:"valid"`
	E164        string `json:"e164,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Region      string `json:"region,omitempty"`
	NumberType  string `json:"number_type,omitempty"`
	Carrier     string `json:"carrier,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Describe returns metadata for a canonical number. Identity numbers carry no
// phone metadata; unparseable numbers come back with Valid=false.
func Describe(canonical string) Info {
	if isCNIC(canonical) {
		return Info{Kind: KindCNIC, Valid: true}
	}
	info := Info{Kind: Classify(canonical)}
	num, err := phonenumbers.Parse(canonical, DefaultRegion)
	if err != nil {
		return info
	}
	info.CountryCode = fmt.Sprintf("+%d", num.GetCountryCode())
	info.Region = phonenumbers.GetRegionCodeForNumber(num)
	if !phonenumbers.IsValidNumber(num) {
		return info
	}
	info.Valid = true
	info.E164 = phonenumbers.Format(num, phonenumbers.E164)
	info.NumberType = numberTypeName(phonenumbers.GetNumberType(num))
	if c, err := phonenumbers.GetCarrierForNumber(num, "en"); err == nil {
		info.Carrier = c
	}
	if loc, err := phonenumbers.GetGeocodingForNumber(num, "en"); err == nil {
		info.Location = loc
	}
	return info
}

func numberTypeName(t phonenumbers.PhoneNumberType) string {
	switch t {
	case phonenumbers.MOBILE:
		return "mobile"
	case phonenumbers.FIXED_LINE:
		return "landline"
	case phonenumbers.FIXED_LINE_OR_MOBILE:
		return "landline_or_mobile"
	case phonenumbers.TOLL_FREE:
		return "toll_free"
	case phonenumbers.PREMIUM_RATE:
		return "premium_rate"
	case phonenumbers.VOIP:
		return "voip"
	case phonenumbers.UAN:
		return "uan"
	}
	return "unknown"
}
