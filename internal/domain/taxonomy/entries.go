package taxonomy

// entries is the compiled-in classification table. Rows are grouped by sector
// and industry; Find falls back to the first row of an industry or sector, so
// the first row of each group should be its most representative leaf.
var entries = []Entry{
	// Agriculture & Agribusiness
	{"Agriculture & Agribusiness", "Agri processing", "Sugar mills", 4, 4},
	{"Agriculture & Agribusiness", "Agri processing", "Rice mills", 5, 3},
	{"Agriculture & Agribusiness", "Agri processing", "Cassava starch & ethanol", 5, 3},
	{"Agriculture & Agribusiness", "Agri processing", "Palm oil mills", 5, 3},
	{"Agriculture & Agribusiness", "Crop farming", "Sugarcane plantations", 6, 3},
	{"Agriculture & Agribusiness", "Crop farming", "Rubber & palm plantations", 6, 3},
	{"Agriculture & Agribusiness", "Crop farming", "Rice & cassava farming", 7, 2},
	{"Agriculture & Agribusiness", "Livestock & aquaculture", "Poultry farming", 5, 3},
	{"Agriculture & Agribusiness", "Livestock & aquaculture", "Swine farming", 6, 2},
	{"Agriculture & Agribusiness", "Livestock & aquaculture", "Shrimp & fish farming", 7, 2},

	// Automotive & Transport Equipment
	{"Automotive & Transport Equipment", "Vehicle assembly", "OEM car assembly", 2, 5},
	{"Automotive & Transport Equipment", "Vehicle assembly", "Motorcycle assembly", 3, 4},
	{"Automotive & Transport Equipment", "Auto parts", "Tier-1 auto parts", 3, 4},
	{"Automotive & Transport Equipment", "Auto parts", "EV battery & components", 4, 5},
	{"Automotive & Transport Equipment", "Auto parts", "Tier-2/3 auto parts", 5, 3},

	// Chemicals & Materials
	{"Chemicals & Materials", "Petrochemicals", "Upstream petrochemicals", 3, 4},
	{"Chemicals & Materials", "Petrochemicals", "Specialty chemicals", 4, 4},
	{"Chemicals & Materials", "Plastics & rubber products", "Plastic packaging", 5, 3},
	{"Chemicals & Materials", "Plastics & rubber products", "Rubber gloves & products", 5, 3},
	{"Chemicals & Materials", "Construction materials", "Cement", 3, 3},
	{"Chemicals & Materials", "Construction materials", "Steel fabrication", 5, 3},
	{"Chemicals & Materials", "Construction materials", "Glass & ceramics", 5, 3},

	// Electronics & Semiconductors
	{"Electronics & Semiconductors", "Electronics manufacturing", "Hard disk drives & storage", 3, 4},
	{"Electronics & Semiconductors", "Electronics manufacturing", "PCB assembly", 4, 4},
	{"Electronics & Semiconductors", "Electronics manufacturing", "Electrical appliances", 4, 4},
	{"Electronics & Semiconductors", "Semiconductors", "Semiconductor assembly & test", 3, 5},

	// Energy & Utilities
	{"Energy & Utilities", "Power generation", "IPP - renewable", 2, 5},
	{"Energy & Utilities", "Power generation", "SPP cogeneration", 3, 4},
	{"Energy & Utilities", "Power generation", "IPP - conventional", 3, 3},
	{"Energy & Utilities", "Water & waste", "Water supply & treatment", 3, 4},
	{"Energy & Utilities", "Water & waste", "Waste management & recycling", 5, 3},
	{"Energy & Utilities", "Oil & gas downstream", "Fuel retail stations", 4, 3},
	{"Energy & Utilities", "Oil & gas downstream", "LPG & fuel terminals", 3, 3},

	// Food & Beverage
	{"Food & Beverage", "Food processing", "Frozen & processed food", 3, 4},
	{"Food & Beverage", "Food processing", "Seafood processing", 4, 4},
	{"Food & Beverage", "Food processing", "Dairy products", 3, 4},
	{"Food & Beverage", "Food processing", "Bakery & snacks", 5, 3},
	{"Food & Beverage", "Beverages", "Breweries & distilleries", 2, 4},
	{"Food & Beverage", "Beverages", "Soft drinks & bottled water", 3, 4},
	{"Food & Beverage", "Cold chain", "Cold storage warehouses", 4, 5},

	// Healthcare & Education
	{"Healthcare & Education", "Healthcare", "Private hospitals", 2, 4},
	{"Healthcare & Education", "Healthcare", "Pharmaceutical manufacturing", 3, 4},
	{"Healthcare & Education", "Healthcare", "Clinics & nursing homes", 5, 2},
	{"Healthcare & Education", "Education", "International schools", 3, 3},
	{"Healthcare & Education", "Education", "Universities", 3, 3},

	// Logistics & Transportation
	{"Logistics & Transportation", "Warehousing & distribution", "Third-party logistics", 4, 4},
	{"Logistics & Transportation", "Warehousing & distribution", "E-commerce fulfilment", 4, 4},
	{"Logistics & Transportation", "Transport infrastructure", "Airports & seaports", 2, 4},
	{"Logistics & Transportation", "Transport infrastructure", "Rail & mass transit depots", 2, 3},

	// Public Sector & Non-profit
	{"Public Sector & Non-profit", "Government", "State enterprises", 2, 3},
	{"Public Sector & Non-profit", "Government", "Government agencies", 3, 2},
	{"Public Sector & Non-profit", "Religious & charitable", "Temples & religious sites", 6, 1},
	{"Public Sector & Non-profit", "Religious & charitable", "Foundations & NGOs", 6, 1},

	// Real Estate & Hospitality
	{"Real Estate & Hospitality", "Industrial property", "Logistics parks", 3, 5},
	{"Real Estate & Hospitality", "Industrial property", "Ready-built factories", 3, 4},
	{"Real Estate & Hospitality", "Commercial property", "Shopping malls", 3, 4},
	{"Real Estate & Hospitality", "Commercial property", "Grade-A offices", 3, 4},
	{"Real Estate & Hospitality", "Commercial property", "Community malls", 5, 3},
	{"Real Estate & Hospitality", "Hospitality", "Hotels & resorts", 5, 3},
	{"Real Estate & Hospitality", "Hospitality", "Serviced apartments", 5, 2},

	// Retail & Consumer
	{"Retail & Consumer", "Modern trade", "Hypermarkets", 2, 4},
	{"Retail & Consumer", "Modern trade", "Convenience store chains", 2, 4},
	{"Retail & Consumer", "Modern trade", "Department stores", 4, 3},
	{"Retail & Consumer", "Specialty retail", "Home improvement retail", 3, 4},
	{"Retail & Consumer", "Specialty retail", "Auto dealerships", 5, 2},

	// Technology & Telecom
	{"Technology & Telecom", "Data centers & cloud", "Hyperscale", 1, 5},
	{"Technology & Telecom", "Data centers & cloud", "Colocation", 2, 5},
	{"Technology & Telecom", "Data centers & cloud", "Enterprise server rooms", 4, 3},
	{"Technology & Telecom", "Telecommunications", "Mobile network towers", 2, 4},
	{"Technology & Telecom", "Telecommunications", "Fixed broadband", 3, 3},

	// Textiles & Light Industry
	{"Textiles & Light Industry", "Textiles & apparel", "Spinning & weaving", 6, 2},
	{"Textiles & Light Industry", "Textiles & apparel", "Dyeing & finishing", 6, 2},
	{"Textiles & Light Industry", "Textiles & apparel", "Garment manufacturing", 7, 1},
	{"Textiles & Light Industry", "Paper & printing", "Pulp & paper mills", 4, 3},
	{"Textiles & Light Industry", "Paper & printing", "Printing & corrugated packaging", 5, 2},
	{"Textiles & Light Industry", "Wood & furniture", "Furniture manufacturing", 6, 2},
	{"Textiles & Light Industry", "Wood & furniture", "Sawmills & wood pellets", 7, 1},
}
