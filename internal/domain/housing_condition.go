package domain

import (
	"errors"
)

var (
	ErrNegativeRooms        = errors.New("number of rooms must not be negative")
	ErrNegativeBathrooms    = errors.New("number of bathrooms must not be negative")
	ErrBathroomsExceedRooms = errors.New("number of bathrooms must not exceed number of rooms")
)

type HousingTenure string

const (
	HousingOwned    HousingTenure = "OWNED"
	HousingRented   HousingTenure = "RENTED"
	HousingCeded    HousingTenure = "CEDED"
	HousingSquatted HousingTenure = "SQUATTED"
)

func ParseHousingTenure(raw string) (HousingTenure, error) {
	return parseEnum("housing tenure", raw, HousingOwned, HousingRented, HousingCeded, HousingSquatted)
}

type WallMaterial string

const (
	WallMasonry      WallMaterial = "MASONRY"
	WallFinishedWood WallMaterial = "FINISHED_WOOD"
	WallMakeshift    WallMaterial = "MAKESHIFT_MATERIALS"
)

func ParseWallMaterial(raw string) (WallMaterial, error) {
	return parseEnum("wall material", raw, WallMasonry, WallFinishedWood, WallMakeshift)
}

type WaterSupply string

const (
	WaterPublicNetwork    WaterSupply = "PUBLIC_NETWORK"
	WaterWellOrSpring     WaterSupply = "WELL_OR_SPRING"
	WaterRainwaterHarvest WaterSupply = "RAINWATER_HARVEST"
	WaterTruck            WaterSupply = "WATER_TRUCK"
	WaterOther            WaterSupply = "OTHER"
)

func ParseWaterSupply(raw string) (WaterSupply, error) {
	return parseEnum("water supply", raw, WaterPublicNetwork, WaterWellOrSpring, WaterRainwaterHarvest, WaterTruck, WaterOther)
}

type ElectricityAccess string

const (
	ElectricityMetered   ElectricityAccess = "METERED_CONNECTION"
	ElectricityIrregular ElectricityAccess = "IRREGULAR_CONNECTION"
	ElectricityNone      ElectricityAccess = "NO_ACCESS"
)

func ParseElectricityAccess(raw string) (ElectricityAccess, error) {
	return parseEnum("electricity access", raw, ElectricityMetered, ElectricityIrregular, ElectricityNone)
}

type SewageDisposal string

const (
	SewagePublicSewer    SewageDisposal = "PUBLIC_SEWER"
	SewageSepticTank     SewageDisposal = "SEPTIC_TANK"
	SewageRudimentaryPit SewageDisposal = "RUDIMENTARY_PIT"
	SewageOpen           SewageDisposal = "OPEN_SEWAGE"
	SewageNoBathroom     SewageDisposal = "NO_BATHROOM"
)

func ParseSewageDisposal(raw string) (SewageDisposal, error) {
	return parseEnum("sewage disposal", raw, SewagePublicSewer, SewageSepticTank, SewageRudimentaryPit, SewageOpen, SewageNoBathroom)
}

type WasteCollection string

const (
	WasteDirectCollection   WasteCollection = "DIRECT_COLLECTION"
	WasteIndirectCollection WasteCollection = "INDIRECT_COLLECTION"
	WasteNoCollection       WasteCollection = "NO_COLLECTION"
)

func ParseWasteCollection(raw string) (WasteCollection, error) {
	return parseEnum("waste collection", raw, WasteDirectCollection, WasteIndirectCollection, WasteNoCollection)
}

type AccessibilityLevel string

const (
	AccessibilityFull    AccessibilityLevel = "FULLY_ACCESSIBLE"
	AccessibilityPartial AccessibilityLevel = "PARTIALLY_ACCESSIBLE"
	AccessibilityNone    AccessibilityLevel = "NOT_ACCESSIBLE"
)

func ParseAccessibilityLevel(raw string) (AccessibilityLevel, error) {
	return parseEnum("accessibility level", raw, AccessibilityFull, AccessibilityPartial, AccessibilityNone)
}

// HousingCondition consolidates the habitability assessment of the
// patient's home. Persisted as an opaque JSON blob on the parent row.
type HousingCondition struct {
	Tenure                 HousingTenure      `json:"type"`
	WallMaterial           WallMaterial       `json:"wallMaterial"`
	NumberOfRooms          int                `json:"numberOfRooms"`
	NumberOfBathrooms      int                `json:"numberOfBathrooms"`
	WaterSupply            WaterSupply        `json:"waterSupply"`
	ElectricityAccess      ElectricityAccess  `json:"electricityAccess"`
	SewageDisposal         SewageDisposal     `json:"sewageDisposal"`
	WasteCollection        WasteCollection    `json:"wasteCollection"`
	AccessibilityLevel     AccessibilityLevel `json:"accessibilityLevel"`
	IsInGeographicRiskArea bool               `json:"isInGeographicRiskArea"`
	IsInSocialConflictArea bool               `json:"isInSocialConflictArea"`
}

type HousingConditionInput struct {
	Tenure                 HousingTenure
	WallMaterial           WallMaterial
	NumberOfRooms          int
	NumberOfBathrooms      int
	WaterSupply            WaterSupply
	ElectricityAccess      ElectricityAccess
	SewageDisposal         SewageDisposal
	WasteCollection        WasteCollection
	AccessibilityLevel     AccessibilityLevel
	IsInGeographicRiskArea bool
	IsInSocialConflictArea bool
}

func NewHousingCondition(in HousingConditionInput) (HousingCondition, error) {
	if in.NumberOfRooms < 0 {
		return HousingCondition{}, ErrNegativeRooms
	}
	if in.NumberOfBathrooms < 0 {
		return HousingCondition{}, ErrNegativeBathrooms
	}
	if in.NumberOfBathrooms > in.NumberOfRooms {
		return HousingCondition{}, ErrBathroomsExceedRooms
	}
	return HousingCondition{
		Tenure:                 in.Tenure,
		WallMaterial:           in.WallMaterial,
		NumberOfRooms:          in.NumberOfRooms,
		NumberOfBathrooms:      in.NumberOfBathrooms,
		WaterSupply:            in.WaterSupply,
		ElectricityAccess:      in.ElectricityAccess,
		SewageDisposal:         in.SewageDisposal,
		WasteCollection:        in.WasteCollection,
		AccessibilityLevel:     in.AccessibilityLevel,
		IsInGeographicRiskArea: in.IsInGeographicRiskArea,
		IsInSocialConflictArea: in.IsInSocialConflictArea,
	}, nil
}
