package services

import (
	"bytes"
	"fmt"
	"strings"

	"MenuMate/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// NoServiceItem marks a station that is not serving the period.
const NoServiceItem = "No Service"

var (
	mealHeading   = cascadia.MustCompile("h3")
	stationHeader = cascadia.MustCompile("h4")
	itemNameBlock = cascadia.MustCompile("div.item-name")
	traitList     = cascadia.MustCompile("ul.traits")
)

type nutritionLabel struct {
	label string
	key   string
}

// Labels whose value is the last token of the same cell.
var inlineNutrition = []nutritionLabel{
	{"Calories", "calories"},
	{"Total Fat", "total_fat"},
	{"Saturated Fat", "saturated_fat"},
	{"Trans Fat", "trans_fat"},
	{"Cholesterol", "cholesterol"},
	{"Sodium", "sodium"},
	{"Total Carbohydrate", "total_carbohydrate"},
	{"Dietary Fiber", "dietary_fiber"},
	{"Sugars", "sugars"},
	{"Protein", "protein"},
}

// Labels whose value lives in the following cell.
var nextCellNutrition = []nutritionLabel{
	{"Vitamin A", "vitamin_a"},
	{"Vitamin C", "vitamin_c"},
	{"Calcium", "calcium"},
	{"Iron", "iron"},
}

// MenuParser turns one hall's menu page into a DailyMenu.
//
// Meal period, station, item name and trait list are taken from the
// nearest matching element that precedes the item block in document
// order, not from its ancestors. The menu site emits these headings as
// flat siblings, so tree nesting cannot be relied on.
type MenuParser struct{}

func NewMenuParser() *MenuParser {
	return &MenuParser{}
}

func (p *MenuParser) Parse(raw []byte, date string) (*models.DailyMenu, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Element: "document", Reason: err.Error()}
	}

	title := doc.Find("title").First()
	if title.Length() == 0 {
		return nil, missingElement("title")
	}
	hallName := strings.TrimSpace(strings.SplitN(strippedText(title.Nodes...), " | ", 2)[0])

	container := doc.Find("div#mdining-items").First()
	if container.Length() == 0 {
		return nil, missingElement("div#mdining-items")
	}

	order := newDocumentOrder(doc.Nodes[0])
	menu := models.NewDailyMenu(hallName, date)

	var parseErr error
	container.Find("ul.items").EachWithBreak(func(_ int, section *goquery.Selection) bool {
		parseErr = p.parseSection(order, section, menu)
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return menu, nil
}

func (p *MenuParser) parseSection(order *documentOrder, section *goquery.Selection, menu *models.DailyMenu) error {
	node := section.Nodes[0]

	mealNode := order.previous(node, mealHeading)
	if mealNode == nil {
		return missingElement("meal heading (h3)")
	}
	mealText := strippedText(mealNode)
	period, ok := models.ParseMealPeriod(mealText)
	if !ok {
		return &ParseError{Element: "meal heading (h3)", Reason: fmt.Sprintf("unknown meal period %q", mealText)}
	}

	stationNode := order.previous(node, stationHeader)
	if stationNode == nil {
		return missingElement("station heading (h4)")
	}
	station := strippedText(stationNode)
	menu.Menus[period] = menu.Menus[period].Reset(station)

	var itemErr error
	section.Find("div.nutrition-wrapper").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		var item *models.MenuItem
		item, itemErr = p.parseItem(order, block)
		if itemErr != nil {
			return false
		}
		if item != nil {
			menu.Menus[period].Append(station, *item)
		}
		return true
	})
	return itemErr
}

// parseItem returns nil for the "No Service" placeholder.
func (p *MenuParser) parseItem(order *documentOrder, block *goquery.Selection) (*models.MenuItem, error) {
	node := block.Nodes[0]

	nameNode := order.previous(node, itemNameBlock)
	if nameNode == nil {
		return nil, missingElement("div.item-name")
	}
	name := strippedText(nameNode)
	if name == NoServiceItem {
		return nil, nil
	}

	item := &models.MenuItem{
		ItemName:  name,
		Traits:    []string{},
		Allergens: []string{},
	}

	if traitsNode := order.previous(node, traitList); traitsNode != nil {
		item.Traits = listItems(goquery.NewDocumentFromNode(traitsNode).Selection)
	}
	if allergens := block.Find("div.allergens").First(); allergens.Length() > 0 {
		item.Allergens = listItems(allergens)
	}

	item.Nutrition = parseNutrition(block.Find("td"))
	return item, nil
}

func parseNutrition(cells *goquery.Selection) map[string]string {
	nutrition := map[string]string{}
	texts := cells.Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})

	for i, text := range texts {
		if strings.Contains(text, "Serving Size") {
			nutrition["serving_size"] = servingSize(text)
		}
		for _, l := range inlineNutrition {
			if strings.Contains(text, l.label) {
				nutrition[l.key] = lastToken(text)
			}
		}
		for _, l := range nextCellNutrition {
			if strings.Contains(text, l.label) && i+1 < len(texts) {
				nutrition[l.key] = lastToken(texts[i+1])
			}
		}
	}
	return nutrition
}

// servingSize takes the text after the last "(" and drops its final two
// characters, e.g. "1 cup (240g)" -> "240".
func servingSize(text string) string {
	if idx := strings.LastIndex(text, "("); idx >= 0 {
		text = text[idx+1:]
	}
	r := []rune(text)
	if len(r) < 2 {
		return ""
	}
	return string(r[:len(r)-2])
}

func lastToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func listItems(s *goquery.Selection) []string {
	out := []string{}
	s.Find("li").Each(func(_ int, li *goquery.Selection) {
		out = append(out, strippedText(li.Nodes...))
	})
	return out
}

// strippedText trims every text fragment under the nodes and joins them
// with no separator. Empty fragments are dropped.
func strippedText(nodes ...*html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}

// documentOrder is the pre-order list of element nodes, so that
// "preceding in document order" is a backward scan over a slice.
type documentOrder struct {
	nodes    []*html.Node
	position map[*html.Node]int
}

func newDocumentOrder(root *html.Node) *documentOrder {
	d := &documentOrder{position: map[*html.Node]int{}}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			d.position[n] = len(d.nodes)
			d.nodes = append(d.nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return d
}

// previous returns the closest element before n that matches.
func (d *documentOrder) previous(n *html.Node, m cascadia.Matcher) *html.Node {
	idx, ok := d.position[n]
	if !ok {
		return nil
	}
	for i := idx - 1; i >= 0; i-- {
		if m.Match(d.nodes[i]) {
			return d.nodes[i]
		}
	}
	return nil
}
