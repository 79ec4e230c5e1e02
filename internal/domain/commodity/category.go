package commodity

// Category is the taxonomy bucket a commodity belongs to. The set is closed;
// CategoryUnknown is the sentinel for ids the taxonomy cannot place.
type Category string

const (
	CategoryChemicals           Category = "Chemicals"
	CategoryConsumerItems       Category = "Consumer Items"
	CategoryFoods               Category = "Foods"
	CategoryIndustrialMaterials Category = "Industrial Materials"
	CategoryLegalDrugs          Category = "Legal Drugs"
	CategoryMachinery           Category = "Machinery"
	CategoryMedicines           Category = "Medicines"
	CategoryMetals              Category = "Metals"
	CategoryMinerals            Category = "Minerals"
	CategorySalvage             Category = "Salvage"
	CategoryTechnology          Category = "Technology"
	CategoryTextiles            Category = "Textiles"
	CategoryWaste               Category = "Waste"
	CategoryWeapons             Category = "Weapons"
	CategoryUnknown             Category = "Unknown"
)

var categoryIcons = map[Category]string{
	CategoryChemicals:           "TestBeaker",
	CategoryConsumerItems:       "ShoppingCart",
	CategoryFoods:               "EatDrink",
	CategoryIndustrialMaterials: "Manufacturing",
	CategoryLegalDrugs:          "Cocktails",
	CategoryMachinery:           "Settings",
	CategoryMedicines:           "Health",
	CategoryMetals:              "CubeShape",
	CategoryMinerals:            "Diamond",
	CategorySalvage:             "Recycle",
	CategoryTechnology:          "Processing",
	CategoryTextiles:            "Shirt",
	CategoryWaste:               "Delete",
	CategoryWeapons:             "Shield",
}

const unknownIcon = "Unknown"

// IconKey returns the visual icon token for a category.
func IconKey(c Category) string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return unknownIcon
}

// Categories returns every known category, excluding CategoryUnknown, in label order.
func Categories() []Category {
	return []Category{
		CategoryChemicals,
		CategoryConsumerItems,
		CategoryFoods,
		CategoryIndustrialMaterials,
		CategoryLegalDrugs,
		CategoryMachinery,
		CategoryMedicines,
		CategoryMetals,
		CategoryMinerals,
		CategorySalvage,
		CategoryTechnology,
		CategoryTextiles,
		CategoryWaste,
		CategoryWeapons,
	}
}

// IsKnown reports whether c is part of the closed category set.
func (c Category) IsKnown() bool {
	_, ok := categoryIcons[c]
	return ok
}

// Economy is a source-economy tag: the kind of economy whose markets produce
// a commodity.
type Economy string

const (
	EconomyAgriculture  Economy = "Agriculture"
	EconomyExtraction   Economy = "Extraction"
	EconomyHighTech     Economy = "High Tech"
	EconomyIndustrial   Economy = "Industrial"
	EconomyMilitary     Economy = "Military"
	EconomyRefinery     Economy = "Refinery"
	EconomyTerraforming Economy = "Terraforming"
	EconomyTourism      Economy = "Tourism"
)
