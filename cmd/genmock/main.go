// Command genmock writes a synthetic mart_conditions_week.csv for local runs
// and demos. Output is deterministic for a given seed.
//
// Usage:
//
//	go run ./cmd/genmock -out mart_conditions_week.csv -years 2023,2024 -weeks 52
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
)

// climate is a rough weekly profile for one city.
type climate struct {
	country   string
	city      string
	meanTemp  float64 // annual mean, Celsius
	amplitude float64 // half the summer/winter swing; negative in the southern/tropical wet season sense
	rainyDays float64 // average rain days per week
}

var cities = []climate{
	{country: "Germany", city: "Berlin", meanTemp: 10.3, amplitude: 9.5, rainyDays: 2.3},
	{country: "Cameroon", city: "Yaounde", meanTemp: 23.6, amplitude: -1.5, rainyDays: 3.9},
	{country: "Ireland", city: "Dublin", meanTemp: 9.8, amplitude: 5.0, rainyDays: 3.4},
	{country: "Spain", city: "Madrid", meanTemp: 15.0, amplitude: 10.5, rainyDays: 1.0},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "mart_conditions_week.csv", "output CSV path")
	yearsFlag := flag.String("years", "2023,2024", "comma-separated years to generate")
	weeks := flag.Int("weeks", 52, "weeks per year (1-53)")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	if *weeks < 1 || *weeks > 53 {
		return fmt.Errorf("weeks must be between 1 and 53, got %d", *weeks)
	}
	years, err := parseYears(*yearsFlag)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{domain.ColCountry, domain.ColCity, domain.ColYear, "week",
		domain.ColAvgTempC, domain.ColRainDays, domain.ColSnowDays}
	if err := w.Write(header); err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	rows := 0
	for _, year := range years {
		for _, c := range cities {
			for week := 1; week <= *weeks; week++ {
				if err := w.Write(generateRow(rng, c, year, week)); err != nil {
					return err
				}
				rows++
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}

	log.Printf("wrote %d rows to %s", rows, *out)
	return nil
}

func generateRow(rng *rand.Rand, c climate, year, week int) []string {
	// Peak warmth around week 29 (mid July).
	season := math.Cos(2 * math.Pi * float64(week-29) / 52)
	temp := c.meanTemp + c.amplitude*season + rng.NormFloat64()*1.8

	rain := clampDays(c.rainyDays + rng.NormFloat64()*1.2)
	snow := 0
	if temp < 2 {
		snow = clampDays((2-temp)*0.8 + rng.NormFloat64())
		rain = max(0, rain-snow)
	}

	return []string{
		c.country,
		c.city,
		strconv.Itoa(year),
		strconv.Itoa(week),
		strconv.FormatFloat(math.Round(temp*10)/10, 'f', 1, 64),
		strconv.Itoa(rain),
		strconv.Itoa(snow),
	}
}

func clampDays(v float64) int {
	return int(math.Max(0, math.Min(7, math.Round(v))))
}

func parseYears(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", part)
		}
		years = append(years, y)
	}
	return years, nil
}
