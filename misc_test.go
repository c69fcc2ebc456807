package seekpager

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Placeholder and identifier quote patterns shared by the mysql and postgres
// dialects.
const (
	ph = `(?:\$\d+|\?)`
	qt = "[`'\"]"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

type tUser struct {
	ID   uint
	Name string
	Age  int
}

var tUserGetters = Getters[tUser]{
	"id":   func(u tUser) any { return u.ID },
	"name": func(u tUser) any { return u.Name },
	"age":  func(u tUser) any { return u.Age },
}

type tPerson struct {
	ID   int64
	Age  int
	Name string
	Nick *string
}

var tPersonGetters = Getters[tPerson]{
	"id":   func(p tPerson) any { return p.ID },
	"age":  func(p tPerson) any { return p.Age },
	"name": func(p tPerson) any { return p.Name },
	"nick": func(p tPerson) any { return p.Nick },
}

// tPeople returns n people with repeating ages and names, so that only the id
// is unique.
func tPeople(n int) []tPerson {
	names := []string{"Mango", "Apple", "Kiwi", "Banana", "Cherry"}

	ret := make([]tPerson, 0, n)
	for i := 1; i <= n; i++ {
		ret = append(ret, tPerson{
			ID:   int64(i),
			Age:  20 + (i*7)%4*10,
			Name: names[(i*3)%len(names)],
		})
	}

	return ret
}

func personIDs(rows []tPerson) []int64 {
	ret := make([]int64, 0, len(rows))
	for _, row := range rows {
		ret = append(ret, row.ID)
	}

	return ret
}

// walkPages follows NextToken (or PreviousToken) from the page addressed by
// rawToken until the chain ends and returns the pages in visiting order.
func walkPages[Q, T any](
	t *testing.T,
	pager *Paginator[Q, T],
	q Q,
	rawToken string,
	direction ContinuationDirection,
) []*PageResult[T] {
	t.Helper()

	var pages []*PageResult[T]
	for range 1000 {
		page, err := pager.Page(context.Background(), q, rawToken)
		require.NoError(t, err)

		pages = append(pages, page)

		rawToken = page.NextToken
		if direction == PreviousPage {
			rawToken = page.PreviousToken
		}

		if rawToken == "" {
			return pages
		}
	}

	require.FailNow(t, "pagination did not terminate")
	return nil
}
