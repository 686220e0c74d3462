package model

// Tag is a closed-set categorical label on a record, used only for
// display grouping. Tags never affect balance math.
type Tag string

const (
	TagFood           Tag = "food"
	TagTransportation Tag = "transportation"
	TagShopping       Tag = "shopping"
	TagEntertainment  Tag = "entertainment"
	TagTravel         Tag = "travel"
	TagHousing        Tag = "housing"
	TagUtilities      Tag = "utilities"
	TagEducation      Tag = "education"
	TagHealth         Tag = "health"
	TagInvestment     Tag = "investment"
	TagIncome         Tag = "income"
	TagGift           Tag = "gift"
	TagCharity        Tag = "charity"
)

// Tags lists all tags in display order.
var Tags = []Tag{
	TagFood, TagTransportation, TagShopping, TagEntertainment, TagTravel,
	TagHousing, TagUtilities, TagEducation, TagHealth, TagInvestment,
	TagIncome, TagGift, TagCharity,
}

// tagLabels maps each tag to its display label. Like the kind attribute
// table, this is the single place display hints live.
var tagLabels = map[Tag]string{
	TagFood:           "Food",
	TagTransportation: "Transportation",
	TagShopping:       "Shopping",
	TagEntertainment:  "Entertainment",
	TagTravel:         "Travel",
	TagHousing:        "Housing",
	TagUtilities:      "Utilities",
	TagEducation:      "Education",
	TagHealth:         "Health",
	TagInvestment:     "Investment",
	TagIncome:         "Income",
	TagGift:           "Gift",
	TagCharity:        "Charity",
}

// Label returns the tag's display label, or the raw tag for an unknown one.
func (t Tag) Label() string {
	if l, ok := tagLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is a member of the closed tag set.
func (t Tag) Valid() bool {
	_, ok := tagLabels[t]
	return ok
}
