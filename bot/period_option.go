package bot

import (
	"fmt"
	"strings"
	"time"

	"wordler/bot/common"
	"wordler/models"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
	log "github.com/sirupsen/logrus"
)

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	return w
}

// resolvePeriod turns the tournament option into a period. Accepted inputs are a
// period id ("2024-03-T1"), an ISO date, or free text such as "yesterday".
// An empty input selects the period containing now.
func resolvePeriod(input string, now time.Time, loc *time.Location) (models.TournamentPeriod, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	input = strings.TrimSpace(input)
	if input == "" {
		return models.PeriodFor(now), nil
	}

	if period, err := models.ParsePeriod(strings.ToUpper(input)); err == nil {
		return period, nil
	}

	if day, err := time.ParseInLocation(models.DateLayout, input, loc); err == nil {
		return models.PeriodFor(day), nil
	}

	result, err := dateParser.Parse(strings.ToLower(input), now)
	if err != nil {
		log.WithError(err).WithField("input", input).Debug("Failed to parse tournament date")
	}
	if result == nil {
		return models.TournamentPeriod{}, common.NewUserError(
			fmt.Sprintf("I couldn't understand %q. Try a date like 2024-03-20, a period like 2024-03-T1, or \"yesterday\".", input),
			"unrecognized tournament date option",
		)
	}

	return models.PeriodFor(result.Time.In(loc)), nil
}
