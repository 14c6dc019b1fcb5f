package crawler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"homescout/internal/domain"
	"homescout/pkg/errcodes"
)

// Коды городов, поддерживаемые источником.
var cityCodes = map[string]string{
	"上海": "sh",
	"苏州": "su",
}

// ListingSummary — запись из страницы списка: имя, цена и ссылка на деталь.
type ListingSummary struct {
	Name      string
	AvgPrice  *int
	SourceURL string
}

// DetailFields — атрибуты комплекса, извлечённые из детальной страницы.
// Отсутствующее или нечитаемое поле остаётся nil — это штатный исход,
// а не ошибка разбора.
type DetailFields struct {
	PropertyCompany *string
	PropertyFee     *float64
	BuildYear       *int
	VolumeRatio     *float64
	GreenRatio      *float64
	Developer       *string
	TotalUnits      *int
	ParkingRatio    *string
}

// selectorChain — упорядоченная цепочка запасных селекторов одного поля.
// Шаблоны источника различаются между городами и версиями вёрстки, поэтому
// варианты перечислены данными и пробуются по порядку до первого непустого.
type selectorChain []string

func (c selectorChain) find(s *goquery.Selection) *goquery.Selection {
	for _, selector := range c {
		if found := s.Find(selector); found.Length() > 0 {
			return found
		}
	}

	return nil
}

func (c selectorChain) text(s *goquery.Selection) string {
	if found := c.find(s); found != nil {
		return strings.TrimSpace(found.First().Text())
	}

	return ""
}

// Цепочки страницы списка.
var (
	listItemChain  = selectorChain{"li.xiaoquListItem", "div.listContent li.clear"}
	listNameChain  = selectorChain{"div.title a", "a.xiaoquTitle"}
	listPriceChain = selectorChain{"div.totalPrice span", "div.xiaoquListItemPrice span"}
)

// Цепочки детальной страницы.
var (
	detailRowChain   = selectorChain{"div.xiaoquInfoItem", "div.xiaoquDescItem"}
	detailLabelChain = selectorChain{"span.xiaoquInfoLabel", "span.xiaoquDescLabel"}
	detailValueChain = selectorChain{"span.xiaoquInfoContent", "span.xiaoquDescContent"}
)

// Соответствие подписи строки детальной страницы полю записи вместе
// с правилом нормализации значения.
var detailFieldRules = map[string]func(f *DetailFields, raw string){
	"物业公司": func(f *DetailFields, raw string) { f.PropertyCompany = &raw },
	"物业费用": func(f *DetailFields, raw string) { f.PropertyFee = parseFloat(raw) },
	"建筑年代": func(f *DetailFields, raw string) { f.BuildYear = parseInt(raw) },
	"容积率":  func(f *DetailFields, raw string) { f.VolumeRatio = parseFloat(raw) },
	"绿化率":  func(f *DetailFields, raw string) { f.GreenRatio = parsePercent(raw) },
	"开发商":  func(f *DetailFields, raw string) { f.Developer = &raw },
	"房屋总数": func(f *DetailFields, raw string) { f.TotalUnits = parseInt(raw) },
	"车位配比": func(f *DetailFields, raw string) { f.ParkingRatio = &raw },
}

var (
	intPattern   = regexp.MustCompile(`\d+`)
	floatPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// BeikeParser разбирает страницы источника в нормализованные записи.
// Разбор никогда не паникует на битой разметке: худший случай —
// пустой или частично заполненный результат.
type BeikeParser struct{}

func NewBeikeParser() *BeikeParser {
	return &BeikeParser{}
}

// BuildListURL собирает URL страницы списка комплексов.
func (p *BeikeParser) BuildListURL(city, district string, page int) (string, error) {
	code, ok := cityCodes[city]
	if !ok {
		return "", domain.NewError(errcodes.UnsupportedCity, fmt.Sprintf("unsupported city %q", city))
	}

	return fmt.Sprintf("https://%s.ke.com/xiaoqu/%s/pg%d/", code, district, page), nil
}

// ParseListPage извлекает записи списка: имя, среднюю цену и ссылку.
// Элементы без имени пропускаются.
func (p *BeikeParser) ParseListPage(html string) []ListingSummary {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var listings []ListingSummary

	items := listItemChain.find(doc.Selection)
	if items == nil {
		return listings
	}

	items.Each(func(_ int, item *goquery.Selection) {
		name := listNameChain.text(item)
		if name == "" {
			return
		}

		var sourceURL string
		if anchor := listNameChain.find(item); anchor != nil {
			sourceURL = strings.TrimSpace(anchor.First().AttrOr("href", ""))
		}

		listings = append(listings, ListingSummary{
			Name:      name,
			AvgPrice:  parseInt(listPriceChain.text(item)),
			SourceURL: sourceURL,
		})
	})

	return listings
}

// ParseDetailPage извлекает атрибуты комплекса по подписям строк
// ("物业公司", "建筑年代" и т.д.) с числовой нормализацией по типу поля.
func (p *BeikeParser) ParseDetailPage(html string) DetailFields {
	var fields DetailFields

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fields
	}

	rows := detailRowChain.find(doc.Selection)
	if rows == nil {
		return fields
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		label := detailLabelChain.text(row)
		apply, ok := detailFieldRules[label]
		if !ok {
			return
		}

		value := detailValueChain.text(row)
		if value == "" {
			return
		}

		apply(&fields, value)
	})

	return fields
}

// parseInt достаёт первое целое из смешанного текста ("3000户", "2010年").
// Нечитаемое значение — nil, не ошибка.
func parseInt(s string) *int {
	match := intPattern.FindString(s)
	if match == "" {
		return nil
	}

	v, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}

	return &v
}

// parseFloat достаёт первое число из смешанного текста ("3.5元/平米/月").
func parseFloat(s string) *float64 {
	match := floatPattern.FindString(s)
	if match == "" {
		return nil
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}

	return &v
}

// parsePercent нормализует процентные поля к [0,1] независимо от того,
// записан источником "0.35", "35" или "35%".
func parsePercent(s string) *float64 {
	v := parseFloat(s)
	if v == nil {
		return nil
	}

	if *v > 1 {
		normalized := *v / 100
		return &normalized
	}

	return v
}
