package catalog

var builtinPlants = []PlantRecord{
	{
		ID:              1,
		Name:            "Tomato",
		Type:            Vegetable,
		Sunlight:        FullSun,
		Water:           Medium,
		Maintenance:     Medium,
		GrowthSpeed:     Moderate,
		GrowthDuration:  "60-80 days",
		Season:          Summer,
		Description:     "Juicy, sun-loving tomatoes perfect for containers",
		SpaceTips:       "Use large pots (5-gallon) and provide support stakes",
		FullDescription: "Tomatoes thrive in full sun and warm temperatures. They need consistent watering and benefit from regular fertilization.",
	},
	{
		ID:              2,
		Name:            "Basil",
		Type:            Herb,
		Sunlight:        FullSun,
		Water:           Medium,
		Maintenance:     Low,
		GrowthSpeed:     Fast,
		GrowthDuration:  "30-60 days",
		Season:          Summer,
		Description:     "Aromatic herb essential for Italian cooking",
		SpaceTips:       "Grows well in small pots, pinch flowers for bushier growth",
		FullDescription: "Basil loves heat and sun. Keep soil moist but well-drained. Regular harvesting encourages growth.",
	},
	{
		ID:              3,
		Name:            "Marigold",
		Type:            Flower,
		Sunlight:        FullSun,
		Water:           Low,
		Maintenance:     Low,
		GrowthSpeed:     Fast,
		GrowthDuration:  "45-60 days",
		Season:          AllSeasons,
		Description:     "Bright flowers that naturally repel pests",
		SpaceTips:       "Perfect for border planting and companion planting",
		FullDescription: "Marigolds are tough, drought-resistant flowers that bloom continuously in full sun.",
	},
	{
		ID:              4,
		Name:            "Rosemary",
		Type:            Herb,
		Sunlight:        FullSun,
		Water:           Low,
		Maintenance:     Low,
		GrowthSpeed:     Slow,
		GrowthDuration:  "90-180 days",
		Season:          AllSeasons,
		Description:     "Drought-tolerant herb with aromatic leaves",
		SpaceTips:       "Great for rocky or sandy soil in containers",
		FullDescription: "Rosemary thrives in full sun and well-drained soil. Very low maintenance once established.",
	},
	{
		ID:              5,
		Name:            "Mint",
		Type:            Herb,
		Sunlight:        PartialSun,
		Water:           High,
		Maintenance:     Low,
		GrowthSpeed:     Fast,
		GrowthDuration:  "30-45 days",
		Season:          Cool,
		Description:     "Fast-growing herb perfect for teas and cooking",
		SpaceTips:       "Grows aggressively, best in contained spaces",
		FullDescription: "Mint prefers moist soil and partial shade. Can become invasive if not contained.",
	},
	{
		ID:              6,
		Name:            "Lettuce",
		Type:            Vegetable,
		Sunlight:        PartialSun,
		Water:           High,
		Maintenance:     Low,
		GrowthSpeed:     Fast,
		GrowthDuration:  "30-45 days",
		Season:          Cool,
		Description:     "Crisp leafy greens for fresh salads",
		SpaceTips:       "Successive planting for continuous harvest",
		FullDescription: "Lettuce grows quickly in cool weather with consistent moisture. Bolts in hot weather.",
	},
	{
		ID:              7,
		Name:            "Spinach",
		Type:            Vegetable,
		Sunlight:        PartialSun,
		Water:           High,
		Maintenance:     Low,
		GrowthSpeed:     Fast,
		GrowthDuration:  "40-50 days",
		Season:          Cool,
		Description:     "Nutrient-packed leafy green",
		SpaceTips:       "Harvest outer leaves for continuous production",
		FullDescription: "Spinach thrives in cool weather with regular watering. Rich in iron and vitamins.",
	},
	{
		ID:              8,
		Name:            "Cilantro",
		Type:            Herb,
		Sunlight:        PartialSun,
		Water:           Medium,
		Maintenance:     Medium,
		GrowthSpeed:     Fast,
		GrowthDuration:  "30-45 days",
		Season:          Cool,
		Description:     "Fresh herb essential for Asian and Mexican cuisine",
		SpaceTips:       "Plant successively every 2-3 weeks",
		FullDescription: "Cilantro prefers cooler temperatures and bolts quickly in heat. Keep soil consistently moist.",
	},
	{
		ID:              9,
		Name:            "Parsley",
		Type:            Herb,
		Sunlight:        Shade,
		Water:           Medium,
		Maintenance:     Low,
		GrowthSpeed:     Slow,
		GrowthDuration:  "70-90 days",
		Season:          Cool,
		Description:     "Versatile herb that grows in various conditions",
		SpaceTips:       "Great for window boxes and shady corners",
		FullDescription: "Parsley is a biennial herb that grows well in shade. Rich in vitamins and easy to grow.",
	},
	{
		ID:              10,
		Name:            "Kale",
		Type:            Vegetable,
		Sunlight:        Shade,
		Water:           Medium,
		Maintenance:     Low,
		GrowthSpeed:     Moderate,
		GrowthDuration:  "50-65 days",
		Season:          Cool,
		Description:     "Superfood green packed with nutrients",
		SpaceTips:       "Harvest lower leaves first, plant grows upward",
		FullDescription: "Kale is cold-tolerant and grows well in partial shade. Becomes sweeter after frost.",
	},
	{
		ID:              11,
		Name:            "Chives",
		Type:            Herb,
		Sunlight:        Shade,
		Water:           Medium,
		Maintenance:     Low,
		GrowthSpeed:     Moderate,
		GrowthDuration:  "60-90 days",
		Season:          AllSeasons,
		Description:     "Mild onion-flavored herb for garnishes",
		SpaceTips:       "Divide clumps every 2-3 years for best growth",
		FullDescription: "Chives are perennial herbs that grow well in containers. Cut back regularly for new growth.",
	},
	{
		ID:              12,
		Name:            "Mushrooms",
		Type:            Fungus,
		Sunlight:        Shade,
		Water:           High,
		Maintenance:     Medium,
		GrowthSpeed:     Fast,
		GrowthDuration:  "20-30 days",
		Season:          AllSeasons,
		Description:     "Gourmet mushrooms grown in shady spots",
		SpaceTips:       "Requires specific growing kits and high humidity",
		FullDescription: "Mushrooms thrive in dark, humid conditions. Perfect for indoor cultivation in basements or closets.",
	},
}
