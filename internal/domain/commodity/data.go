package commodity

// Commodity is one taxonomy entry.
type Commodity struct {
	ID        string
	Name      string
	Category  Category
	Economies []Economy
}

// builtin is the commodity table shipped with the application. Ids match the
// backend's lowercase keys.
var builtin = []Commodity{
	{"liquidoxygen", "Liquid Oxygen", CategoryChemicals, []Economy{EconomyIndustrial}},
	{"pesticides", "Pesticides", CategoryChemicals, []Economy{EconomyRefinery, EconomyTerraforming}},
	{"surfacestabilisers", "Surface Stabilisers", CategoryChemicals, []Economy{EconomyRefinery}},
	{"water", "Water", CategoryChemicals, []Economy{EconomyRefinery, EconomyTerraforming}},
	{"hydrogenfuel", "Hydrogen Fuel", CategoryChemicals, []Economy{EconomyRefinery}},

	{"evacuationshelter", "Evacuation Shelter", CategoryConsumerItems, []Economy{EconomyIndustrial}},
	{"survivalequipment", "Survival Equipment", CategoryConsumerItems, []Economy{EconomyIndustrial}},
	{"domesticappliances", "Domestic Appliances", CategoryConsumerItems, []Economy{EconomyIndustrial}},

	{"foodcartridges", "Food Cartridges", CategoryFoods, []Economy{EconomyIndustrial}},
	{"fruitandvegetables", "Fruit and Vegetables", CategoryFoods, []Economy{EconomyAgriculture, EconomyTerraforming}},
	{"grain", "Grain", CategoryFoods, []Economy{EconomyAgriculture, EconomyTerraforming}},

	{"ceramiccomposites", "Ceramic Composites", CategoryIndustrialMaterials, []Economy{EconomyRefinery}},
	{"cmmcomposite", "CMM Composite", CategoryIndustrialMaterials, []Economy{EconomyRefinery}},
	{"insulatingmembrane", "Insulating Membrane", CategoryIndustrialMaterials, []Economy{EconomyIndustrial}},
	{"polymers", "Polymers", CategoryIndustrialMaterials, []Economy{EconomyRefinery}},
	{"semiconductors", "Semiconductors", CategoryIndustrialMaterials, []Economy{EconomyRefinery}},
	{"superconductors", "Superconductors", CategoryIndustrialMaterials, []Economy{EconomyRefinery}},

	{"beer", "Beer", CategoryLegalDrugs, []Economy{EconomyAgriculture}},
	{"liquor", "Liquor", CategoryLegalDrugs, []Economy{EconomyAgriculture, EconomyTourism}},
	{"wine", "Wine", CategoryLegalDrugs, []Economy{EconomyAgriculture}},

	{"buildingfabricators", "Building Fabricators", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"cropharvesters", "Crop Harvesters", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"emergencypowercells", "Emergency Power Cells", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"geologicalequipment", "Geological Equipment", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"heatsinkinterlink", "Heatsink Interlink", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"mineralextractors", "Mineral Extractors", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"microbialfurnaces", "Microbial Furnaces", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"powergenerators", "Power Generators", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"thermalcoolingunits", "Thermal Cooling Units", CategoryMachinery, []Economy{EconomyIndustrial}},
	{"waterpurifiers", "Water Purifiers", CategoryMachinery, []Economy{EconomyIndustrial}},

	{"agriculturalmedicines", "Agri-Medicines", CategoryMedicines, []Economy{EconomyHighTech}},
	{"basicmedicines", "Basic Medicines", CategoryMedicines, []Economy{EconomyHighTech}},
	{"combatstabilisers", "Combat Stabilisers", CategoryMedicines, []Economy{EconomyHighTech, EconomyMilitary}},

	{"aluminium", "Aluminium", CategoryMetals, []Economy{EconomyRefinery}},
	{"copper", "Copper", CategoryMetals, []Economy{EconomyRefinery}},
	{"gold", "Gold", CategoryMetals, []Economy{EconomyRefinery}},
	{"steel", "Steel", CategoryMetals, []Economy{EconomyRefinery}},
	{"titanium", "Titanium", CategoryMetals, []Economy{EconomyRefinery}},

	{"bauxite", "Bauxite", CategoryMinerals, []Economy{EconomyExtraction}},
	{"bertrandite", "Bertrandite", CategoryMinerals, []Economy{EconomyExtraction}},
	{"rutile", "Rutile", CategoryMinerals, []Economy{EconomyExtraction}},

	{"usscargoblackbox", "Black Box", CategorySalvage, nil},
	{"wreckagecomponents", "Wreckage Components", CategorySalvage, nil},

	{"computercomponents", "Computer Components", CategoryTechnology, []Economy{EconomyHighTech}},
	{"landenrichmentsystems", "Land Enrichment Systems", CategoryTechnology, []Economy{EconomyHighTech}},
	{"medicaldiagnosticequipment", "Medical Diagnostic Equipment", CategoryTechnology, []Economy{EconomyHighTech}},
	{"microcontrollers", "Micro Controllers", CategoryTechnology, []Economy{EconomyHighTech}},
	{"muonimager", "Muon Imager", CategoryTechnology, []Economy{EconomyHighTech}},
	{"resonatingseparators", "Resonating Separators", CategoryTechnology, []Economy{EconomyHighTech}},
	{"robotics", "Robotics", CategoryTechnology, []Economy{EconomyHighTech, EconomyIndustrial}},
	{"structuralregulators", "Structural Regulators", CategoryTechnology, []Economy{EconomyHighTech}},

	{"militarygradefabrics", "Military Grade Fabrics", CategoryTextiles, []Economy{EconomyIndustrial, EconomyMilitary}},
	{"syntheticfabrics", "Synthetic Fabrics", CategoryTextiles, []Economy{EconomyRefinery}},

	{"biowaste", "Biowaste", CategoryWaste, []Economy{EconomyAgriculture}},
	{"scrap", "Scrap", CategoryWaste, []Economy{EconomyIndustrial}},

	{"battleweapons", "Battle Weapons", CategoryWeapons, []Economy{EconomyMilitary}},
	{"nonlethalweapons", "Non-Lethal Weapons", CategoryWeapons, []Economy{EconomyMilitary}},
	{"reactivearmour", "Reactive Armour", CategoryWeapons, []Economy{EconomyMilitary}},
}
