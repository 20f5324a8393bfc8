package api

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"heritage-survey/model"
)

// RequiredFields must be present and non-empty in every submission. Order
// matters: error messages list missing fields in this order.
var RequiredFields = []string{"village_city", "street_name", "house_no", "owner_data", "lat", "lng"}

// BuildDraft flattens the raw text body into a record draft without images.
// Multipart encoding lets a field name repeat, so each field arrives as a
// slice; the first occurrence wins. The returned slice names every required
// field that is missing or empty; the draft is nil when any are.
func BuildDraft(form url.Values) (*model.HeritageRecord, []string) {
	var missing []string
	for _, name := range RequiredFields {
		if firstValue(form, name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, missing
	}

	return &model.HeritageRecord{
		SerialNumber:          firstValue(form, "serial_number"),
		VillageCity:           firstValue(form, "village_city"),
		HistoricName:          firstValue(form, "historic_name"),
		OtherName:             firstValue(form, "other_name"),
		OtherVillageData:      firstValue(form, "other_village_data"),
		StreetName:            firstValue(form, "street_name"),
		HouseNo:               firstValue(form, "house_no"),
		NameAdjoiningBuilding: firstValue(form, "name_adjoining_building"),
		Situated:              firstValue(form, "situated"),
		Approach:              firstValue(form, "approach"),
		OwnerData:             firstValue(form, "owner_data"),
		Occupancy:             firstValue(form, "occupancy"),
		PastUsage:             firstValue(form, "past_usage"),
		PresentUsage:          firstValue(form, "present_usage"),
		ProtectedStructure:    firstValue(form, "protected_structure"),
		ConditionPreservation: firstValue(form, "condition_preservation"),
		HistorySignificance:   firstValue(form, "history_significance"),
		AgeBuilding:           model.FormNumber(firstValue(form, "age_building")),
		AgeSource:             firstValue(form, "age_source"),
		EstimatedYear:         model.FormNumber(firstValue(form, "estimated_year")),
		EstimatedYearSource:   firstValue(form, "estimated_year_source"),
		NoFloor:               model.FormNumber(firstValue(form, "no_floor")),
		StyleData:             firstValue(form, "style_data"),
		PeriodConsturction:    firstValue(form, "period_consturction"),
		TypologyBuilding:      firstValue(form, "typology_building"),
		RoofData:              firstValue(form, "roof_data"),
		CeilingData:           firstValue(form, "ceiling_data"),
		WallData:              firstValue(form, "wall_data"),
		JallisData:            firstValue(form, "jallis_data"),
		OpeningsData:          firstValue(form, "openings_data"),
		FloorData:             firstValue(form, "floor_data"),
		BuildingFacadesData:   firstValue(form, "building_facades_data"),
		OthersData:            firstValue(form, "others_data"),
		SettingData:           firstValue(form, "setting_data"),
		DecorativeFeature:     firstValue(form, "decorative_feature"),
		Coordinates: model.Coordinates{
			Lat: parseCoordinate(firstValue(form, "lat")),
			Lng: parseCoordinate(firstValue(form, "lng")),
		},
		Images: model.NewImageSet(nil),
	}, nil
}

func firstValue(form url.Values, name string) string {
	if vs, ok := form[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// parseCoordinate runs after the presence check: a value that is present but
// not numeric passes validation and becomes NaN in the stored document. JSON
// renders the NaN as null.
func parseCoordinate(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
