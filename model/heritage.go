package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HeritageRecord is one heritage-building survey submission. Records are
// written once and never updated or deleted by this service.
type HeritageRecord struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SerialNumber          string             `bson:"serialNumber" json:"serialNumber"`
	VillageCity           string             `bson:"village_city,omitempty" json:"village_city,omitempty"`
	HistoricName          string             `bson:"historic_name,omitempty" json:"historic_name,omitempty"`
	OtherName             string             `bson:"other_name,omitempty" json:"other_name,omitempty"`
	OtherVillageData      string             `bson:"other_village_data,omitempty" json:"other_village_data,omitempty"`
	StreetName            string             `bson:"street_name,omitempty" json:"street_name,omitempty"`
	HouseNo               string             `bson:"house_no,omitempty" json:"house_no,omitempty"`
	NameAdjoiningBuilding string             `bson:"name_adjoining_building,omitempty" json:"name_adjoining_building,omitempty"`
	Situated              string             `bson:"situated,omitempty" json:"situated,omitempty"`
	Approach              string             `bson:"approach,omitempty" json:"approach,omitempty"`
	OwnerData             string             `bson:"owner_data,omitempty" json:"owner_data,omitempty"`
	Occupancy             string             `bson:"occupancy,omitempty" json:"occupancy,omitempty"`
	PastUsage             string             `bson:"past_usage,omitempty" json:"past_usage,omitempty"`
	PresentUsage          string             `bson:"present_usage,omitempty" json:"present_usage,omitempty"`
	ProtectedStructure    string             `bson:"protected_structure,omitempty" json:"protected_structure,omitempty"`
	ConditionPreservation string             `bson:"condition_preservation,omitempty" json:"condition_preservation,omitempty"`
	HistorySignificance   string             `bson:"history_significance,omitempty" json:"history_significance,omitempty"`
	AgeBuilding           FormNumber         `bson:"age_building,omitempty" json:"age_building,omitempty"`
	AgeSource             string             `bson:"age_source,omitempty" json:"age_source,omitempty"`
	EstimatedYear         FormNumber         `bson:"estimated_year,omitempty" json:"estimated_year,omitempty"`
	EstimatedYearSource   string             `bson:"estimated_year_source,omitempty" json:"estimated_year_source,omitempty"`
	NoFloor               FormNumber         `bson:"no_floor,omitempty" json:"no_floor,omitempty"`
	StyleData             string             `bson:"style_data,omitempty" json:"style_data,omitempty"`
	PeriodConsturction    string             `bson:"period_consturction,omitempty" json:"period_consturction,omitempty"`
	TypologyBuilding      string             `bson:"typology_building,omitempty" json:"typology_building,omitempty"`
	RoofData              string             `bson:"roof_data,omitempty" json:"roof_data,omitempty"`
	CeilingData           string             `bson:"ceiling_data,omitempty" json:"ceiling_data,omitempty"`
	WallData              string             `bson:"wall_data,omitempty" json:"wall_data,omitempty"`
	JallisData            string             `bson:"jallis_data,omitempty" json:"jallis_data,omitempty"`
	OpeningsData          string             `bson:"openings_data,omitempty" json:"openings_data,omitempty"`
	FloorData             string             `bson:"floor_data,omitempty" json:"floor_data,omitempty"`
	BuildingFacadesData   string             `bson:"building_facades_data,omitempty" json:"building_facades_data,omitempty"`
	OthersData            string             `bson:"others_data,omitempty" json:"others_data,omitempty"`
	SettingData           string             `bson:"setting_data,omitempty" json:"setting_data,omitempty"`
	DecorativeFeature     string             `bson:"decorative_feature,omitempty" json:"decorative_feature,omitempty"`
	Coordinates           Coordinates        `bson:"coordinates" json:"coordinates"`
	Images                ImageSet           `bson:"images" json:"images"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
}

// Coordinates holds the building location. Lat or Lng may be NaN when the
// submitted value was present but not parseable as a number.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// MarshalJSON renders NaN and infinite components as null, which encoding/json
// would otherwise refuse to emit.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return []byte(`{"lat":` + jsonFloat(c.Lat) + `,"lng":` + jsonFloat(c.Lng) + `}`), nil
}

func jsonFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ImageBlob is one uploaded image, held in memory only. ContentType is the
// type declared by the client; intake deliberately accepts any type, the
// jpeg/png/gif set in the survey schema is advisory.
type ImageBlob struct {
	ContentType string `bson:"type" json:"type"`
	Data        []byte `bson:"data" json:"data"`
}

// ImageSet groups uploaded images into the 10 fixed survey categories. Every
// stored record carries all 10 keys, empty or not.
type ImageSet struct {
	RoofImage              []ImageBlob `bson:"roof_image" json:"roof_image"`
	CeilingImage           []ImageBlob `bson:"ceiling_image" json:"ceiling_image"`
	WallImage              []ImageBlob `bson:"wall_image" json:"wall_image"`
	JallisImage            []ImageBlob `bson:"jallis_image" json:"jallis_image"`
	OpeningsImage          []ImageBlob `bson:"openings_image" json:"openings_image"`
	FloorImage             []ImageBlob `bson:"floor_image" json:"floor_image"`
	BuildingFacadesImage   []ImageBlob `bson:"building_facades_image" json:"building_facades_image"`
	OthersImage            []ImageBlob `bson:"others_image" json:"others_image"`
	SettingImage           []ImageBlob `bson:"setting_image" json:"setting_image"`
	DecorativeFeatureImage []ImageBlob `bson:"decorative_feature_image" json:"decorative_feature_image"`
}

// ImageCategories lists the multipart field names for image uploads, in form
// order. Field names outside this list are ignored at intake.
var ImageCategories = []string{
	"roof_image",
	"ceiling_image",
	"wall_image",
	"jallis_image",
	"openings_image",
	"floor_image",
	"building_facades_image",
	"others_image",
	"setting_image",
	"decorative_feature_image",
}

// NewImageSet builds an ImageSet from extracted uploads keyed by category.
// Categories absent from files come out as empty, never nil, so both BSON and
// JSON always carry all 10 keys.
func NewImageSet(files map[string][]ImageBlob) ImageSet {
	return ImageSet{
		RoofImage:              orEmpty(files["roof_image"]),
		CeilingImage:           orEmpty(files["ceiling_image"]),
		WallImage:              orEmpty(files["wall_image"]),
		JallisImage:            orEmpty(files["jallis_image"]),
		OpeningsImage:          orEmpty(files["openings_image"]),
		FloorImage:             orEmpty(files["floor_image"]),
		BuildingFacadesImage:   orEmpty(files["building_facades_image"]),
		OthersImage:            orEmpty(files["others_image"]),
		SettingImage:           orEmpty(files["setting_image"]),
		DecorativeFeatureImage: orEmpty(files["decorative_feature_image"]),
	}
}

func orEmpty(blobs []ImageBlob) []ImageBlob {
	if blobs == nil {
		return []ImageBlob{}
	}
	return blobs
}

// FormNumber is a numeric survey field captured as form text. The normalizer
// passes the raw string through; coercion to the document's numeric type
// happens when the record is marshaled for storage. A non-empty value that is
// not a number fails the write rather than being silently dropped.
type FormNumber string

func (n FormNumber) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if n == "" {
		return bson.TypeNull, nil, nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, nil, fmt.Errorf("numeric field: cannot store %q as a number", string(n))
	}
	return bson.MarshalValue(f)
}

func (n *FormNumber) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull:
		*n = ""
	case bson.TypeDouble:
		*n = FormNumber(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	case bson.TypeInt32:
		*n = FormNumber(strconv.FormatInt(int64(rv.Int32()), 10))
	case bson.TypeInt64:
		*n = FormNumber(strconv.FormatInt(rv.Int64(), 10))
	case bson.TypeString:
		*n = FormNumber(rv.StringValue())
	default:
		return fmt.Errorf("numeric field: unexpected BSON type %s", t)
	}
	return nil
}

// MarshalJSON emits the parsed number, or null when the value is empty or not
// numeric, matching how the stored document reads back.
func (n FormNumber) MarshalJSON() ([]byte, error) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (n *FormNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = FormNumber(strconv.FormatFloat(f, 'f', -1, 64))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("numeric field: %w", err)
	}
	*n = FormNumber(s)
	return nil
}
