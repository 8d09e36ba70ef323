package slots

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	dateRangeRe = regexp.MustCompile(
		`(?:del?)?\s*(\d{1,2})[/-](\d{1,2})[/-](\d{4})\s*(?:al?|hasta)\s*(\d{1,2})[/-](\d{1,2})[/-](\d{4})`,
	)
	nightsRe        = regexp.MustCompile(`(\d+)\s*(?:noches?|días?|dias?)`)
	reservationIDRe = regexp.MustCompile(`reserva\s+(\d+)`)
)

var categoryAliases = []struct {
	category Category
	aliases  []string
}{
	{CategoryStandard, []string{"estandar", "estándar"}},
	{CategoryPremium, []string{"premium"}},
	{CategoryBungalow, []string{"bungalow"}},
	{CategoryGlamping, []string{"glamping"}},
}

var customerKeywords = []struct {
	customer CustomerType
	keywords []string
}{
	{CustomerAdult, []string{"adulto"}},
	{CustomerChild, []string{"niño", "nino"}},
	{CustomerSenior, []string{"senior"}},
	{CustomerDisabled, []string{"persona con discapacidad", "personas con discapacidad"}},
	{CustomerPet, []string{"mascota"}},
	{CustomerGroup, []string{"grupo"}},
}

var months = []struct {
	name   string
	month  time.Month
	season Season
}{
	{"enero", time.January, SeasonLow},
	{"febrero", time.February, SeasonLow},
	{"marzo", time.March, SeasonLow},
	{"abril", time.April, SeasonMedium},
	{"mayo", time.May, SeasonMedium},
	{"junio", time.June, SeasonMedium},
	{"julio", time.July, SeasonHigh},
	{"agosto", time.August, SeasonHigh},
	{"septiembre", time.September, SeasonHigh},
	{"octubre", time.October, SeasonMedium},
	{"noviembre", time.November, SeasonLow},
	{"diciembre", time.December, SeasonLow},
}

// Checked in order, the first match wins.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentListAddOns, []string{"extras disponibles", "lista de extras"}},
	{IntentPriceTable, []string{"tabla"}},
	{IntentModify, []string{"modificar"}},
	{IntentCancel, []string{"cancelar"}},
	{IntentList, []string{"listar"}},
	{IntentSearch, []string{"buscar"}},
	{IntentAvailability, []string{"disponibilidad", "disponible"}},
	// A price question is read-only even when it mentions booking.
	{IntentQuote, []string{"precio", "cuánto", "cuanto", "cuesta", "presupuesto", "tarifa"}},
	{IntentCreate, []string{"crear", "reservar"}},
}

type customerPattern struct {
	customer CustomerType
	keywords []string
	counts   []*regexp.Regexp
}

type Parser struct {
	addOns    []string
	customers []customerPattern
	months    []*regexp.Regexp
}

// New builds a parser that recognises the given add-on names in addition to
// the fixed vocabulary.
func New(addOns []string) *Parser {
	p := &Parser{
		addOns:    append([]string(nil), addOns...),
		customers: make([]customerPattern, 0, len(customerKeywords)),
		months:    make([]*regexp.Regexp, 0, len(months)),
	}

	for _, c := range customerKeywords {
		cp := customerPattern{customer: c.customer, keywords: c.keywords}
		for _, kw := range c.keywords {
			cp.counts = append(cp.counts, regexp.MustCompile(`(\d+)\s*`+regexp.QuoteMeta(kw)))
		}

		p.customers = append(p.customers, cp)
	}

	for _, m := range months {
		p.months = append(p.months, regexp.MustCompile(`\b`+m.name+`\b`))
	}

	return p
}

// Parse never fails: a pattern that does not match leaves its slot empty.
func (p *Parser) Parse(text string) *Slots {
	lower := strings.ToLower(strings.TrimSpace(text))

	s := &Slots{
		Text:          lower,
		Intent:        ParseIntent(lower),
		Dates:         ParseDateRange(lower),
		Nights:        parseNights(lower),
		Category:      ParseCategory(lower),
		Party:         p.parseParty(lower),
		AddOns:        p.parseAddOns(lower),
		ReservationID: ParseReservationID(lower),
	}

	s.Season = p.parseSeason(lower, s.Dates)

	return s
}

func ParseIntent(lower string) Intent {
	for _, ik := range intentKeywords {
		for _, kw := range ik.keywords {
			if strings.Contains(lower, kw) {
				return ik.intent
			}
		}
	}

	return IntentUnknown
}

func ParseDateRange(lower string) *DateRange {
	m := dateRangeRe.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}

	from, ok := civilDate(m[1], m[2], m[3])
	if !ok {
		return nil
	}

	to, ok := civilDate(m[4], m[5], m[6])
	if !ok {
		return nil
	}

	if from.After(to) {
		return nil
	}

	return &DateRange{From: from, To: to}
}

// civilDate rejects values time.Date would silently normalise, like 31/2.
func civilDate(day, month, year string) (time.Time, bool) {
	d, errD := strconv.Atoi(day)
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)

	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, false
	}

	t := Date(y, time.Month(m), d)
	if t.Day() != d || int(t.Month()) != m || t.Year() != y {
		return time.Time{}, false
	}

	return t, true
}

func parseNights(lower string) *int {
	m := nightsRe.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return nil
	}

	return &n
}

func ParseCategory(lower string) *Category {
	for _, c := range categoryAliases {
		for _, alias := range c.aliases {
			if strings.Contains(lower, alias) {
				category := c.category

				return &category
			}
		}
	}

	return nil
}

func ParseReservationID(lower string) *int64 {
	m := reservationIDRe.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}

	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}

	return &id
}

// SeasonForMonth maps a calendar month to its pricing season.
func SeasonForMonth(month time.Month) Season {
	for _, m := range months {
		if m.month == month {
			return m.season
		}
	}

	return SeasonLow
}

func (p *Parser) parseSeason(lower string, dates *DateRange) *Season {
	for _, season := range Seasons() {
		if strings.Contains(lower, strings.ToLower(string(season))) {
			return &season
		}
	}

	for i, re := range p.months {
		if re.MatchString(lower) {
			season := months[i].season

			return &season
		}
	}

	if dates != nil {
		season := SeasonForMonth(dates.From.Month())

		return &season
	}

	return nil
}

func (p *Parser) parseParty(lower string) []PartyMember {
	type found struct {
		member PartyMember
		pos    int
	}

	var party []found

	for _, cp := range p.customers {
		first := -1
		total := 0
		counted := false

		for _, kw := range cp.keywords {
			if idx := strings.Index(lower, kw); idx >= 0 && (first < 0 || idx < first) {
				first = idx
			}
		}

		if first < 0 {
			continue
		}

		for _, re := range cp.counts {
			for _, m := range re.FindAllStringSubmatch(lower, -1) {
				n, err := strconv.Atoi(m[1])
				if err != nil {
					continue
				}

				total += n
				counted = true
			}
		}

		if !counted {
			total = 1
		}

		if total < 1 {
			continue
		}

		party = append(party, found{member: PartyMember{Type: cp.customer, Count: total}, pos: first})
	}

	sort.SliceStable(party, func(i, j int) bool {
		return party[i].pos < party[j].pos
	})

	out := make([]PartyMember, 0, len(party))
	for _, f := range party {
		out = append(out, f.member)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

func (p *Parser) parseAddOns(lower string) []string {
	var out []string

	for _, name := range p.addOns {
		if strings.Contains(lower, strings.ToLower(name)) {
			out = append(out, name)
		}
	}

	return out
}
