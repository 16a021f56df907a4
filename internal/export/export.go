package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexivanou/weather-history-api/internal/model"
)

// Filenames and content types for the download endpoints
const (
	JSONFilename     = "weather_data.json"
	CSVFilename      = "weather_data.csv"
	MarkdownFilename = "weather_data.md"

	JSONContentType     = "application/json"
	CSVContentType      = "text/csv"
	MarkdownContentType = "text/markdown"
)

// Stats computes average, min, and max over a temperature series.
// An empty series yields zeros rather than an error.
func Stats(series []float64) (avg, min, max float64) {
	if len(series) == 0 {
		return 0, 0, 0
	}

	min = series[0]
	max = series[0]
	var sum float64
	for _, v := range series {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return sum / float64(len(series)), min, max
}

// JSON renders the record set as an indented JSON array with the temperature
// series kept nested.
func JSON(records []model.WeatherRecord) ([]byte, error) {
	out := make([]model.ExportRecord, 0, len(records))
	for _, r := range records {
		out = append(out, model.ExportRecord{
			ID:           r.ID,
			Location:     r.Location,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
			Temperatures: r.Temperatures,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

// CSV renders one row per record with temperature statistics to one decimal
func CSV(records []model.WeatherRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Location", "Start Date", "End Date", "Average Temperature", "Min Temperature", "Max Temperature"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, r := range records {
		avg, min, max := Stats(r.Temperatures.Temperature2mMean)
		row := []string{
			r.ID,
			r.Location,
			r.StartDate,
			r.EndDate,
			fmt.Sprintf("%.1f", avg),
			fmt.Sprintf("%.1f", min),
			fmt.Sprintf("%.1f", max),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Markdown renders one section per record with a summary and generated
// map/video search links.
func Markdown(records []model.WeatherRecord) []byte {
	var b strings.Builder

	b.WriteString("# Weather History Data\n\n")
	fmt.Fprintf(&b, "*Generated on %s*\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for _, r := range records {
		avg, min, max := Stats(r.Temperatures.Temperature2mMean)
		query := strings.ReplaceAll(r.Location, " ", "+")

		fmt.Fprintf(&b, "## %s\n\n", r.Location)
		fmt.Fprintf(&b, "- **Date Range:** %s to %s\n", r.StartDate, r.EndDate)
		fmt.Fprintf(&b, "- **Average Temperature:** %.1f°C\n", avg)
		fmt.Fprintf(&b, "- **Min Temperature:** %.1f°C\n", min)
		fmt.Fprintf(&b, "- **Max Temperature:** %.1f°C\n", max)
		fmt.Fprintf(&b, "- **Record ID:** %s\n\n", r.ID)
		b.WriteString("### Links\n")
		fmt.Fprintf(&b, "- [View on Google Maps](https://www.google.com/maps/search/?api=1&query=%s)\n", query)
		fmt.Fprintf(&b, "- [YouTube Videos](https://www.youtube.com/results?search_query=%s+travel)\n\n", query)
		b.WriteString("---\n\n")
	}

	return []byte(b.String())
}
