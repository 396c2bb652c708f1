package battery

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// pmsetSourceRegex matches "Now drawing from 'Battery Power'"
	pmsetSourceRegex = regexp.MustCompile(`drawing from '([^']+)'`)
	// pmsetBatteryRegex matches " -InternalBattery-0 (id=123)	85%; discharging; 4:20 remaining"
	pmsetBatteryRegex = regexp.MustCompile(`(\d{1,3})%;\s*([A-Za-z ]+?);`)
)

// parsePmset parses the output of `pmset -g batt`.
func parsePmset(out string) (Status, error) {
	m := pmsetBatteryRegex.FindStringSubmatch(out)
	if len(m) < 3 {
		return Status{}, ErrNoBattery
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil {
		return Status{}, fmt.Errorf("parsing battery percent %q: %w", m[1], err)
	}

	st := Status{Percent: clampPercent(pct)}
	state := strings.ToLower(strings.TrimSpace(m[2]))
	st.Charging = state == "charging"

	if src := pmsetSourceRegex.FindStringSubmatch(out); len(src) == 2 {
		st.OnBattery = src[1] == "Battery Power"
	} else {
		st.OnBattery = state == "discharging"
	}
	return st, nil
}

// parseSysfs parses the capacity and status attributes of a Linux power supply.
func parseSysfs(capacity, status string) (Status, error) {
	pct, err := strconv.Atoi(capacity)
	if err != nil {
		return Status{}, fmt.Errorf("parsing battery capacity %q: %w", capacity, err)
	}
	status = strings.ToLower(status)
	return Status{
		Percent:   clampPercent(pct),
		Charging:  status == "charging",
		OnBattery: status == "discharging",
	}, nil
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
