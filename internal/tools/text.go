package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/avstrong/campsite/internal/slots"
)

const (
	persistenceFailureText = "No se pudo acceder al registro de reservas. Inténtalo más tarde."
	genericFailureText     = "No se pudo completar la operación. Inténtalo más tarde."
	missingDatesText       = "Indica las fechas con formato dd/mm/aaaa (del X al Y)."
	noReservationsText     = "No hay reservas registradas."
	noMatchesText          = "No se encontraron reservas que coincidan."
	noPricesText           = "No se encontraron precios para esa consulta."
	modifyWithoutIDText    = "Debes indicar el id de la reserva a modificar."
	cancelWithoutIDText    = "Debes indicar el id de la reserva a cancelar."
	quoteClosingText       = "Por favor, envíame todo junto para darte el precio exacto."
	tableHeaderText        = "Para mostrar la tabla de precios indica la temporada (o el mes) y el tipo de parcela."
	tableClosingText       = "Por ejemplo: tabla de precios de bungalow en temporada alta."

	helpText = `No entendí la acción. Puedes pedirme:
- Precio de una estancia (ejemplo: precio para 2 adultos en bungalow en agosto, 4 noches)
- Tabla de precios de una parcela y temporada
- Extras disponibles
- Disponibilidad del dd/mm/aaaa al dd/mm/aaaa
- Crear, listar, buscar, modificar o cancelar reservas (ejemplo: cancelar reserva <id>)`

	quoteRequirementsText = `Para calcular el precio necesito TODOS estos datos en un solo mensaje:
- Número y tipo de personas (ejemplo: 2 adultos y 3 niños)
- Tipo de parcela (estándar, premium, bungalow, glamping, etc.)
- Temporada, mes o fecha de la reserva
- Extras que deseas añadir (electricidad, coche, etc. - opcional)`
)

var missingNames = map[slots.Missing]string{
	slots.MissingSeason:   "temporada, mes o fecha de la reserva",
	slots.MissingCategory: "tipo de parcela (estándar, premium, bungalow, glamping, etc.)",
	slots.MissingParty:    "número y tipo de personas (ejemplo: 2 adultos y 3 niños)",
	slots.MissingDates:    "fechas de la estancia (del dd/mm/aaaa al dd/mm/aaaa)",
}

var plurals = map[slots.CustomerType]string{
	slots.CustomerAdult:    "adultos",
	slots.CustomerChild:    "niños",
	slots.CustomerSenior:   "seniors",
	slots.CustomerDisabled: "personas con discapacidad",
	slots.CustomerPet:      "mascotas",
	slots.CustomerGroup:    "grupos",
}

func missingText(header string, missing *slots.MissingError, closing string) string {
	items := make([]string, 0, missing.Count())
	for _, m := range missing.Missing() {
		items = append(items, missingNames[m])
	}

	verb := "falta"
	if len(items) > 1 {
		verb = "faltan"
	}

	return fmt.Sprintf("%s\n\nAhora mismo %s: %s.\n%s", header, verb, strings.Join(items, ", "), closing)
}

func quantity(count int, customer slots.CustomerType) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, customer)
	}

	name, ok := plurals[customer]
	if !ok {
		name = string(customer) + "s"
	}

	return fmt.Sprintf("%d %s", count, name)
}

// euros drops trailing zeros: 300, 4.5, 12.25.
func euros(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) //nolint:gomnd
}
