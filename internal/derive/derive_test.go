package derive

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
)

type listing struct {
	ID       string
	Subject  string
	Location string
	Medium   string
	Salary   float64
	Created  time.Time
}

var (
	subjects  = []string{"Math", "Physics", "Chemistry", "English", "Biology"}
	locations = []string{"Dhaka", "Chattogram", "Sylhet", "Khulna"}
	mediums   = []string{"Bangla", "English"}
)

func randomListings(r *rand.Rand, n int) []listing {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]listing, n)
	for i := range out {
		out[i] = listing{
			ID:       fmt.Sprintf("t%d", i),
			Subject:  subjects[r.Intn(len(subjects))],
			Location: locations[r.Intn(len(locations))],
			Medium:   mediums[r.Intn(len(mediums))],
			Salary:   float64(1000 * (1 + r.Intn(10))),
			Created:  base.Add(time.Duration(r.Intn(1000)) * time.Hour),
		}
	}
	return out
}

func subjectOf(l listing) string  { return l.Subject }
func locationOf(l listing) string { return l.Location }
func mediumOf(l listing) string   { return l.Medium }

func TestSearch_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	texts := []string{"", "math", "MATH", "a", "dhaka", "xyz", "hy"}

	for i := 0; i < 50; i++ {
		items := randomListings(r, r.Intn(30))
		for _, text := range texts {
			got := Search(items, text, subjectOf, locationOf)

			if text == "" {
				assert.Equal(t, items, got)
				continue
			}
			for _, item := range got {
				hit := strings.Contains(strings.ToLower(item.Subject), strings.ToLower(text)) ||
					strings.Contains(strings.ToLower(item.Location), strings.ToLower(text))
				assert.True(t, hit, "item %v does not contain %q", item, text)
			}
			// nothing matching was dropped
			want := 0
			for _, item := range items {
				if strings.Contains(strings.ToLower(item.Subject+"\x00"+item.Location), strings.ToLower(text)) {
					want++
				}
			}
			assert.Len(t, got, want)
		}
	}
}

func TestFilter_ExactSubset(t *testing.T) {
	r := rand.New(rand.NewSource(2))

	for i := 0; i < 50; i++ {
		items := randomListings(r, r.Intn(40))
		subject := []string{"", "Math", "physics"}[r.Intn(3)]
		location := []string{"", "dhaka", "Sylhet"}[r.Intn(3)]
		medium := []string{"", "Eng"}[r.Intn(2)]

		got := Filter(items,
			Exact(subject, subjectOf),
			Exact(location, locationOf),
			Contains(medium, mediumOf),
		)

		var want []listing
		for _, item := range items {
			if subject != "" && !strings.EqualFold(item.Subject, subject) {
				continue
			}
			if location != "" && !strings.EqualFold(item.Location, location) {
				continue
			}
			if medium != "" && !strings.Contains(strings.ToLower(item.Medium), strings.ToLower(medium)) {
				continue
			}
			want = append(want, item)
		}
		assert.ElementsMatch(t, want, got)
	}
}

func TestExact_IgnoresCaseButNotPartialMatches(t *testing.T) {
	items := []listing{{ID: "a", Subject: "Math"}, {ID: "b", Subject: "MATH"}, {ID: "c", Subject: "Mathematics"}}

	got := Filter(items, Exact("math", subjectOf))

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestFilter_EmptyValuesAreInactive(t *testing.T) {
	items := randomListings(rand.New(rand.NewSource(3)), 10)

	assert.False(t, Exact("", subjectOf).Active())
	assert.Equal(t, items, Filter(items, Exact("", subjectOf), Contains("", locationOf)))
}

func TestSortBy(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	items := []listing{
		{ID: "a", Salary: 3000, Created: day(2)},
		{ID: "b", Salary: 1000, Created: day(3)},
		{ID: "c", Salary: 3000, Created: day(1)},
		{ID: "d", Salary: 2000, Created: day(3)},
	}
	ids := func(ls []listing) string {
		var b strings.Builder
		for _, l := range ls {
			b.WriteString(l.ID)
		}
		return b.String()
	}
	created := func(l listing) time.Time { return l.Created }
	salary := func(l listing) float64 { return l.Salary }

	assert.Equal(t, "bdac", ids(SortBy(items, ByTime(created, Desc))))
	assert.Equal(t, "cabd", ids(SortBy(items, ByTime(created, Asc))))
	assert.Equal(t, "bdac", ids(SortBy(items, ByNumber(salary, Asc))))
	assert.Equal(t, "acdb", ids(SortBy(items, ByNumber(salary, Desc))))
	assert.Equal(t, "abcd", ids(SortBy(items, SortKey[listing]{})))
	assert.Equal(t, "abcd", ids(items), "input must not be reordered")
}

func TestPaginate_Properties(t *testing.T) {
	for n := 0; n <= 25; n++ {
		for size := 1; size <= 7; size++ {
			items := make([]int, n)
			for i := range items {
				items[i] = i
			}

			first := Paginate(items, 1, size)
			wantCount := (n + size - 1) / size
			require.Equal(t, wantCount, first.PageCount)

			var joined []int
			for p := 1; p <= max(first.PageCount, 1); p++ {
				page := Paginate(items, p, size)
				assert.LessOrEqual(t, len(page.Items), size)
				joined = append(joined, page.Items...)
			}
			if n == 0 {
				assert.Empty(t, joined)
			} else {
				assert.Equal(t, items, joined)
			}
		}
	}
}

func TestPaginate_ClampsPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	assert.Equal(t, 1, Paginate(items, 0, 6).Page)
	assert.Equal(t, 1, Paginate(items, -3, 6).Page)
	assert.Equal(t, 2, Paginate(items, 99, 6).Page)
	assert.Equal(t, []int{7}, Paginate(items, 99, 6).Items)

	empty := Paginate([]int{}, 4, 6)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.PageCount)
	assert.Empty(t, empty.Items)
}

func TestInputs_ResolvePage(t *testing.T) {
	in := Inputs{Search: "math", Filters: map[string]string{"medium": "English"}, Sort: "newest", Page: 3}
	in.Seen = in.Fingerprint()
	assert.Equal(t, 3, in.ResolvePage())

	changes := map[string]func(Inputs) Inputs{
		"search": func(i Inputs) Inputs { i.Search = "physics"; return i },
		"filter": func(i Inputs) Inputs {
			i.Filters = map[string]string{"medium": "Bangla"}
			return i
		},
		"sort": func(i Inputs) Inputs { i.Sort = "salary_desc"; return i },
	}
	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 1, change(in).ResolvePage())
		})
	}

	// a new page alone keeps the fingerprint
	next := in
	next.Page = 4
	assert.Equal(t, 4, next.ResolvePage())
}

func TestInputs_FingerprintIgnoresEmptyFiltersAndOrder(t *testing.T) {
	a := Inputs{Filters: map[string]string{"subject": "Math", "class": "", "medium": "English"}}
	b := Inputs{Filters: map[string]string{"medium": "English", "subject": "Math"}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), Inputs{}.Fingerprint())
}

func TestMonthlyBuckets_TwoMonthScenario(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	payments := []models.Payment{
		{ID: "1", Amount: 100, Date: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Amount: 200, Date: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Amount: 300, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	when := func(p models.Payment) time.Time { return p.Date }
	amount := func(p models.Payment) float64 { return p.Amount }

	buckets := MonthlyBuckets(payments, now, 6, when, amount)

	require.Len(t, buckets, 6)
	totals := make([]float64, len(buckets))
	for i, b := range buckets {
		totals[i] = b.Total
	}
	assert.Equal(t, []float64{0, 300, 0, 0, 300, 0}, totals)
	assert.Equal(t, time.January, buckets[0].Start.Month())
	assert.Equal(t, time.June, buckets[5].Start.Month())
	assert.InDelta(t, 600, Sum(payments, amount), 0.0001)
}

func TestMonthlyBuckets_WindowEdges(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{
		time.Date(2023, 9, 30, 23, 59, 0, 0, time.UTC), // before the window
		time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),   // first bucket
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),   // current month
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),    // future
	}
	buckets := MonthlyBuckets(dates, now, 6,
		func(t time.Time) time.Time { return t },
		func(time.Time) float64 { return 1 })

	assert.Equal(t, 1.0, buckets[0].Total)
	assert.Equal(t, 1.0, buckets[5].Total)
	assert.InDelta(t, 2, Sum(buckets, func(b Bucket) float64 { return b.Total }), 0.0001)
	assert.Equal(t, 2023, buckets[0].Start.Year())
}

func TestCountByAndGroupBy(t *testing.T) {
	apps := []models.Application{
		{ID: "1", TuitionID: "t2"},
		{ID: "2", TuitionID: "t1"},
		{ID: "3", TuitionID: "t2"},
	}
	byTuition := func(a models.Application) string { return a.TuitionID }

	assert.Equal(t, map[string]int{"t1": 1, "t2": 2}, CountBy(apps, byTuition))

	order, groups := GroupBy(apps, byTuition)
	assert.Equal(t, []string{"t2", "t1"}, order)
	assert.Len(t, groups["t2"], 2)
}

func TestAppliedSet(t *testing.T) {
	set := AppliedSet([]models.Application{{ID: "a1", TuitionID: "x"}})

	assert.True(t, set.Has("x"))
	assert.False(t, set.Has("y"))
	assert.False(t, AppliedSet(nil).Has("x"))
}
