package tools

import (
	"fmt"
	"strings"

	"github.com/avstrong/campsite/internal/pricing"
	"github.com/avstrong/campsite/internal/slots"
)

func (d *Dispatcher) quote(s *slots.Slots) (string, error) {
	q, err := d.pricing.Quote(s)
	if missing := slots.IsMissingError(err); missing != nil {
		return missingText(quoteRequirementsText, missing, quoteClosingText), nil
	}

	if err != nil {
		return "", fmt.Errorf("quote: %w", err)
	}

	party := make([]string, 0, len(q.Party))
	for _, member := range q.Party {
		party = append(party, quantity(member.Count, member.Type))
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Reserva para %s\n", strings.Join(party, ", "))
	fmt.Fprintf(&b, "Tipo de parcela: %s\n", q.Category)
	fmt.Fprintf(&b, "Temporada: %s\n", q.Season)
	fmt.Fprintf(&b, "Noches: %d\n", q.Nights)

	if len(q.AddOns) > 0 {
		names := make([]string, 0, len(q.AddOns))
		for _, a := range q.AddOns {
			names = append(names, a.Name)
		}

		fmt.Fprintf(&b, "Extras: %s\n", strings.Join(names, ", "))
	}

	b.WriteString("\nDesglose:\n")

	for _, line := range q.Lines {
		b.WriteString(breakdownLine(line))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal: %s€", euros(q.Total))

	return b.String(), nil
}

func breakdownLine(line pricing.Line) string {
	switch {
	case line.Kind == pricing.LineAddOn:
		return fmt.Sprintf("Extra %q: %s€/noche x %d noche(s) = %s€",
			line.Name, euros(line.Rate), line.Nights, euros(line.Subtotal))
	case line.NoRate:
		return fmt.Sprintf("No hay tarifa para %s en esta parcela.",
			quantity(line.Quantity, slots.CustomerType(line.Name)))
	default:
		return fmt.Sprintf("%s: %s€/noche x %d noche(s) = %s€",
			quantity(line.Quantity, slots.CustomerType(line.Name)), euros(line.Rate), line.Nights, euros(line.Subtotal))
	}
}

func (d *Dispatcher) priceTable(s *slots.Slots) (string, error) {
	sheet, err := d.pricing.Table(s)
	if missing := slots.IsMissingError(err); missing != nil {
		return missingText(tableHeaderText, missing, tableClosingText), nil
	}

	if err != nil {
		return "", fmt.Errorf("price table: %w", err)
	}

	if len(sheet.Rates) == 0 {
		return noPricesText, nil
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Tabla de precios de %q en %q:", string(sheet.Category), string(sheet.Season))

	for _, r := range sheet.Rates {
		fmt.Fprintf(&b, "\n- %s: %s€/noche", r.CustomerType, euros(r.Nightly))
	}

	return b.String(), nil
}

func (d *Dispatcher) addOns() string {
	addOns := d.pricing.AddOns()
	if len(addOns) == 0 {
		return "No hay extras disponibles."
	}

	var b strings.Builder

	b.WriteString("Extras disponibles:")

	for _, a := range addOns {
		fmt.Fprintf(&b, "\n- %s: %s€/noche", a.Name, euros(a.Nightly))
	}

	return b.String()
}
