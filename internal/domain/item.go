package domain

import "time"

// Rarity bounds shared by every template kind
const (
	MinRarity = 1
	MaxRarity = 5
)

// ItemType discriminates the four template families
type ItemType string

const (
	ItemTypeFish      ItemType = "fish"
	ItemTypeRod       ItemType = "rod"
	ItemTypeAccessory ItemType = "accessory"
	ItemTypeBait      ItemType = "bait"
)

// Element is an optional affinity carried by rods and fish
type Element string

const (
	ElementNone     Element = ""
	ElementFire     Element = "fire"
	ElementWater    Element = "water"
	ElementGrass    Element = "grass"
	ElementIce      Element = "ice"
	ElementElectric Element = "electric"
	ElementFlying   Element = "flying"
	ElementGround   Element = "ground"
	ElementPoison   Element = "poison"
	// ElementAll is a rod-only tag with a flat bonus against any elemental fish
	ElementAll Element = "all"
)

// FishCategory separates real fish from junk catches
type FishCategory string

const (
	FishCategoryFish    FishCategory = "fish"
	FishCategoryGarbage FishCategory = "garbage"
)

// RodSource records where a rod template can be obtained
type RodSource string

const (
	RodSourceShop    RodSource = "shop"
	RodSourceGacha   RodSource = "gacha"
	RodSourceStarter RodSource = "starter"
)

// FishTemplate is an immutable catalog fish definition. Weights are in grams.
type FishTemplate struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Rarity      int          `json:"rarity"`
	BaseValue   int64        `json:"base_value"`
	MinWeight   int          `json:"min_weight"`
	MaxWeight   int          `json:"max_weight"`
	Element     Element      `json:"element,omitempty"`
	Category    FishCategory `json:"category"`
}

// AverageWeightKg is the midpoint of the weight range in kilograms.
func (f FishTemplate) AverageWeightKg() float64 {
	return float64(f.MinWeight+f.MaxWeight) / 2 / 1000
}

// RodTemplate is an immutable catalog rod definition
type RodTemplate struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Rarity       int       `json:"rarity"`
	Source       RodSource `json:"source"`
	PurchaseCost *int64    `json:"purchase_cost,omitempty"`
	QualityMod   float64   `json:"quality_mod"`
	QuantityMod  float64   `json:"quantity_mod"`
	RareMod      float64   `json:"rare_mod"`
	Durability   *int      `json:"durability,omitempty"`
	Element      Element   `json:"element,omitempty"`
}

// AccessoryTemplate is an immutable catalog accessory definition
type AccessoryTemplate struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Rarity       int     `json:"rarity"`
	SlotType     string  `json:"slot_type"`
	QualityMod   float64 `json:"quality_mod"`
	QuantityMod  float64 `json:"quantity_mod"`
	RareMod      float64 `json:"rare_mod"`
	CoinMod      float64 `json:"coin_mod"`
	PurchaseCost *int64  `json:"purchase_cost,omitempty"`
}

// BaitTemplate is an immutable catalog bait definition
type BaitTemplate struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Rarity           int     `json:"rarity"`
	Cost             int64   `json:"cost"`
	SuccessRateBonus float64 `json:"success_rate_bonus"`
	ValueBonus       float64 `json:"value_bonus"`
}

// RodInstance is a rod owned by a user. Durability is nil for unbreakable rods.
type RodInstance struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	TemplateID int       `json:"template_id"`
	Level      int       `json:"level"`
	Durability *int      `json:"durability,omitempty"`
	IsEquipped bool      `json:"is_equipped"`
	IsListed   bool      `json:"is_listed"`
	ObtainedAt time.Time `json:"obtained_at"`
}

// AccessoryInstance is an accessory owned by a user
type AccessoryInstance struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	TemplateID int       `json:"template_id"`
	IsEquipped bool      `json:"is_equipped"`
	IsListed   bool      `json:"is_listed"`
	ObtainedAt time.Time `json:"obtained_at"`
}

// BaitStack is a quantity of one bait kind. A stack never holds zero.
type BaitStack struct {
	UserID   string `json:"user_id"`
	BaitID   int    `json:"bait_id"`
	Quantity int    `json:"quantity"`
}

// FishCatch is an unsold fish in a user's pond. Weight and value are fixed at catch time.
type FishCatch struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	FishID      int       `json:"fish_id"`
	WeightGrams int       `json:"weight_grams"`
	Value       int64     `json:"value"`
	IsListed    bool      `json:"is_listed"`
	CaughtAt    time.Time `json:"caught_at"`
}

// Equipment is the resolved gear a user fishes with
type Equipment struct {
	Rod       *RodInstance
	RodTpl    *RodTemplate
	Accessory *AccessoryInstance
	AccTpl    *AccessoryTemplate
	Bait      *BaitTemplate
	BaitCount int
}

// Inventory is the full set of owned instances for display
type Inventory struct {
	Rods        []RodInstance       `json:"rods"`
	Accessories []AccessoryInstance `json:"accessories"`
	Baits       []BaitStack         `json:"baits"`
	Fish        []FishCatch         `json:"fish"`
}
