package loader

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"github.com/advdv/labhttp/catalog"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
)

type dynamoSource struct {
	table  string
	cfg    func(context.Context) (aws.Config, error)
	client dynamodb.ScanAPIClient
}

// NewDynamoDBSource scans table for equipment items. Items carry the document fields as
// attributes, "attributes" holds the kind specific object as a JSON string and "position"
// orders the catalog.
func NewDynamoDBSource(client dynamodb.ScanAPIClient, table string) Source {
	return &dynamoSource{table: table, client: client}
}

func (s *dynamoSource) String() string { return "dynamodb://" + s.table }

func (s *dynamoSource) Load(ctx context.Context) ([]*catalog.Equipment, error) {
	client := s.client
	if client == nil {
		cfg, err := awsConfig(ctx, s.String(), s.cfg)
		if err != nil {
			return nil, err
		}

		client = dynamodb.NewFromConfig(cfg)
	}

	type positioned struct {
		pos int64
		rec record
	}

	var rows []positioned
	pages := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{TableName: aws.String(s.table)})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, &LoadError{Source: s.String(), Message: "scan table", Cause: err}
		}

		for _, item := range page.Items {
			rec, pos, err := recordFromItem(item)
			if err != nil {
				return nil, &LoadError{Source: s.String(), Message: "invalid item", Cause: err}
			}

			rows = append(rows, positioned{pos, rec})
		}
	}

	slices.SortStableFunc(rows, func(a, b positioned) int {
		return cmp.Or(cmp.Compare(a.pos, b.pos), cmp.Compare(a.rec.ID, b.rec.ID))
	})

	items := make([]*catalog.Equipment, 0, len(rows))
	for _, row := range rows {
		e, err := newEquipment(row.rec)
		if err != nil {
			return nil, &LoadError{Source: s.String(), Message: "invalid item", Cause: err}
		}

		items = append(items, e)
	}

	return items, nil
}

func recordFromItem(item map[string]types.AttributeValue) (record, int64, error) {
	str := func(name string) string {
		if v, ok := item[name].(*types.AttributeValueMemberS); ok {
			return v.Value
		}
		return ""
	}

	num := func(name string) (float64, error) {
		v, ok := item[name].(*types.AttributeValueMemberN)
		if !ok {
			return 0, nil
		}

		f, err := strconv.ParseFloat(v.Value, 64)
		return f, errors.Wrapf(err, "attribute %s", name)
	}

	rec := record{
		ID:           str("id"),
		Name:         str("name"),
		Kind:         str("kind"),
		Manufacturer: str("manufacturer"),
		Description:  str("description"),
	}

	var err error
	if rec.PowerDrawWatts, err = num("power_draw_watts"); err != nil {
		return rec, 0, err
	}

	pos, err := num("position")
	if err != nil {
		return rec, 0, err
	}

	if attrs := str("attributes"); attrs != "" {
		if !gjson.Valid(attrs) {
			return rec, 0, errors.Newf("item %s: attributes is not valid json", rec.ID)
		}
		rec.Attributes = gjson.Parse(attrs)
	}

	return rec, int64(pos), nil
}
