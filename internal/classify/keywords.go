package classify

import "regexp"

var humanKeywords = []string{
	"person", "people", "human", "face", "selfie", "portrait", "man", "woman",
	"boy", "girl", "child", "baby", "adult", "teen", "family", "group",
	"profile", "headshot", "smile", "wedding", "party", "meeting", "office",
	"friend", "colleague", "vacation", "travel", "restaurant", "indoor_person",
	"avatar", "character", "cartoon", "anime", "drawing", "illustration",
	"figure", "doll", "toy", "model", "render", "3d", "cgi",
}

var measurementHumanKeywords = []string{
	"person", "people", "human", "face", "selfie", "portrait", "man", "woman",
	"avatar", "character", "cartoon", "profile", "headshot",
}

var humanPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(selfie|portrait|face|person|people)\b`),
	regexp.MustCompile(`(?i)\b(avatar|profile|character|cartoon)\b`),
	regexp.MustCompile(`(?i)\b(me|my|myself|self)\b`),
	regexp.MustCompile(`(?i)\b(friend|family|colleague)\b`),
}

var notSpaceKeywords = []string{
	"food", "meal", "kitchen", "bedroom", "bathroom", "living_room",
	"office", "computer", "phone", "animal", "pet", "dog", "cat",
	"interior", "furniture", "electronics", "technology",
}

var spaceKeywords = []string{
	"balcony", "garden", "terrace", "patio", "outdoor", "plant", "green",
	"leaf", "flower", "pot", "planter", "greenhouse", "yard", "space",
	"growing", "cultivation", "herb", "vegetable", "crop", "farming",
	"empty", "blank", "area", "corner", "deck", "rooftop", "windowsill",
	"concrete", "platform", "surface", "floor", "ground", "court", "rink",
	"field", "parking", "lot", "urban", "city", "building_top", "flat",
	"level", "open", "clear", "available", "potential", "view",
	"skateboard", "skate", "basketball", "tennis", "volleyball", "sport",
	"recreation", "playground", "public", "cement", "asphalt", "pavement",
	"slab", "plaza", "courtyard", "square", "hardscape", "tarmac",
}

var measurementSpaceKeywords = []string{
	"field", "rooftop", "patio", "balcony", "garden", "terrace", "yard",
	"backyard", "courtyard", "deck", "outdoor", "space", "area", "plot",
	"land", "ground", "lawn", "empty", "available", "farming", "agriculture",
}

var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^img_\d+`),
	regexp.MustCompile(`(?i)^image_\d+`),
	regexp.MustCompile(`(?i)^photo_\d+`),
	regexp.MustCompile(`(?i)^pic_\d+`),
	regexp.MustCompile(`(?i)^\d{8}_\d{6}`),
	regexp.MustCompile(`(?i)^screenshot`),
	regexp.MustCompile(`(?i)^capture`),
	regexp.MustCompile(`(?i)^snap`),
	regexp.MustCompile(`(?i)^dsc_\d+`),
	regexp.MustCompile(`(?i)^camera`),
	regexp.MustCompile(`(?i)^whatsapp`),
	regexp.MustCompile(`(?i)^signal`),
	regexp.MustCompile(`(?i)^download`),
	regexp.MustCompile(`(?i)^temp`),
	regexp.MustCompile(`(?i)^untitled`),
	regexp.MustCompile(`(?i)^new`),
	regexp.MustCompile(`(?i)-rink`),
	regexp.MustCompile(`(?i)-court`),
	regexp.MustCompile(`(?i)-view`),
	regexp.MustCompile(`(?i)-space`),
	regexp.MustCompile(`(?i)-area`),
}

type spaceGroup struct {
	name     string
	keywords []string
}

// spaceGroups is checked in order; the first match wins.
var spaceGroups = []spaceGroup{
	{"rooftop", []string{"roof", "terrace", "top", "deck"}},
	{"concrete", []string{"concrete", "skateboard", "basketball", "court", "parking"}},
	{"balcony", []string{"balcony", "apartment", "condo"}},
	{"garden", []string{"garden", "yard", "backyard", "lawn"}},
	{"empty", []string{"empty", "vacant", "open", "space"}},
}
