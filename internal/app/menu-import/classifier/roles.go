package menu_classifier

// Role is the semantic meaning of a sheet column.
type Role string

const (
	RoleCategory    Role = "category"
	RoleSubcategory Role = "subcategory"
	RoleNameEN      Role = "name_en"
	RoleNameAR      Role = "name_ar"
	RolePrice       Role = "price"
	RoleMeal        Role = "meal"
	RoleCuisine     Role = "cuisine"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Label is the human readable role name shown on the confirmation surface.
func (r Role) Label() string {
	switch r {
	case RoleCategory:
		return "Category"
	case RoleSubcategory:
		return "Subcategory"
	case RoleNameEN:
		return "Name (English)"
	case RoleNameAR:
		return "Name (Arabic)"
	case RolePrice:
		return "Price"
	case RoleMeal:
		return "Available meals"
	case RoleCuisine:
		return "Cuisine"
	default:
		return string(r)
	}
}

// allRoles is also the precedence order used when two roles tie on a column.
var allRoles = []Role{
	RoleNameEN,
	RolePrice,
	RoleNameAR,
	RoleCategory,
	RoleSubcategory,
	RoleMeal,
	RoleCuisine,
}

var roleRank = func() map[Role]int {
	m := make(map[Role]int, len(allRoles))
	for i, r := range allRoles {
		m[r] = i
	}
	return m
}()

func AllRoles() []Role {
	return allRoles
}

// keywords holds the folded (lower case, NFKC) header variants of every role.
var keywords = map[Role][]string{
	RoleCategory: {
		"category", "categories", "section", "group", "menu section",
		"الفئة", "القسم", "التصنيف",
	},
	RoleSubcategory: {
		"subcategory", "sub category", "sub-category", "sub_category", "subsection",
		"الفئة الفرعية", "التصنيف الفرعي",
	},
	RoleNameEN: {
		"name", "item", "item name", "name_en", "english name", "product", "dish",
		"title", "menu item",
	},
	RoleNameAR: {
		"arabic", "name_ar", "arabic name", "name (ar)", "الاسم", "اسم الصنف", "الصنف", "اسم",
	},
	RolePrice: {
		"price", "sar", "cost", "amount", "rate", "value", "السعر", "القيمة",
	},
	RoleMeal: {
		"meal", "meals", "available meals", "availability", "timing", "serving time",
		"الوجبة", "الوجبات",
	},
	RoleCuisine: {
		"cuisine", "cuisine type", "kitchen", "style", "المطبخ",
	},
}

// Keywords returns the header variants recognised for a role.
func Keywords(r Role) []string {
	return keywords[r]
}

func isKeyword(r Role, s string) bool {
	for _, kw := range keywords[r] {
		if s == kw {
			return true
		}
	}
	return false
}

const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
	MealHighTea   = "High Tea"
)

const (
	CuisineFastFood = "Fast Food"
	CuisineDesi     = "Desi"
	CuisineGeneral  = "General"
)

// DefaultCategory labels records that have no category cell to read.
const DefaultCategory = "Uncategorized"

func defaultMeals() []string {
	return []string{MealLunch, MealDinner}
}
