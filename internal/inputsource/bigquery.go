package inputsource

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// BigQuerySource loads inputs from a table with columns (day INT64,
// input STRING), one row per day.
type BigQuerySource struct {
	Project string
	// Table is the fully qualified table, e.g. "proj.dataset.puzzle_inputs".
	Table string
	// Location defaults to "US".
	Location string
}

// rowIterator is the subset of *bigquery.RowIterator used to read results.
type rowIterator interface {
	Next(dst interface{}) error
}

func (s BigQuerySource) Fetch(ctx context.Context, day int) ([]byte, error) {
	client, err := bigquery.NewClient(ctx, s.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf("SELECT input FROM `%s` WHERE day = @day", s.Table))
	q.Parameters = []bigquery.QueryParameter{{Name: "day", Value: day}}
	q.Location = s.Location
	if q.Location == "" {
		q.Location = "US"
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}
	return readInputRow(it, day)
}

// readInputRow expects exactly one row whose first column is the input text.
func readInputRow(it rowIterator, day int) ([]byte, error) {
	var input []byte
	rows := 0
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		rows++
		if rows > 1 {
			return nil, fmt.Errorf("day %d: more than one input row", day)
		}
		if len(row) == 0 {
			return nil, fmt.Errorf("day %d: empty row", day)
		}
		text, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		input = []byte(text)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w for day %d in bigquery", ErrNoInput, day)
	}
	return input, nil
}
