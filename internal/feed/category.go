package feed

import (
	"fmt"
	"strings"
)

// Category 帖子分类（封闭枚举，新增分类需同步 Icon / Categories）
type Category uint8

const (
	CategoryMess Category = iota + 1
	CategoryLaundry
	CategoryCafe
	CategoryGeneral
)

// Categories returns every category in tab order.
func Categories() []Category {
	return []Category{CategoryMess, CategoryLaundry, CategoryCafe, CategoryGeneral}
}

func (c Category) String() string {
	switch c {
	case CategoryMess:
		return "Mess"
	case CategoryLaundry:
		return "Laundry"
	case CategoryCafe:
		return "Cafe"
	case CategoryGeneral:
		return "General"
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMess, CategoryLaundry, CategoryCafe, CategoryGeneral:
		return true
	}
	return false
}

// Icon 前端展示用的图标名
func (c Category) Icon() string {
	switch c {
	case CategoryMess:
		return "utensils"
	case CategoryLaundry:
		return "shirt"
	case CategoryCafe:
		return "coffee"
	case CategoryGeneral:
		return "megaphone"
	}
	return ""
}

// ParseCategory accepts the category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	v, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// AllLabel is the filter name that matches every category.
const AllLabel = "All"

// Filter 分类筛选条件；零值即 All
type Filter struct {
	category Category
}

// All matches every post.
var All = Filter{}

// Only matches posts of a single category.
func Only(c Category) Filter { return Filter{category: c} }

// ParseFilter accepts "All" or a category name.
func ParseFilter(s string) (Filter, error) {
	if s == "" || strings.EqualFold(s, AllLabel) {
		return All, nil
	}
	c, err := ParseCategory(s)
	if err != nil {
		return All, err
	}
	return Only(c), nil
}

func (f Filter) IsAll() bool { return f.category == 0 }

// Category returns the filtered category and false for All.
func (f Filter) Category() (Category, bool) { return f.category, !f.IsAll() }

func (f Filter) Match(p Post) bool {
	return f.IsAll() || p.Category == f.category
}

func (f Filter) String() string {
	if f.IsAll() {
		return AllLabel
	}
	return f.category.String()
}

// Direction 投票方向
type Direction int8

const (
	Up   Direction = 1
	Down Direction = -1
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int8(d))
}
