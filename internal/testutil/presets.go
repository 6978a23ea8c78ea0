package testutil

import "time"

// StandardTime is the reference time used by WithStandardTestData.
var StandardTime = time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)

// WithStandardTestData adds a small registry:
//   - authorized: 34ABC123 (Ayşe Yılmaz), 06XYZ99 (Mehmet Demir), 35TT001 (Zeynep Kaya)
//   - blacklisted: 16BB202, 01ZZ777
//   - entries: 34ABC123 then 06XYZ99, one minute apart
func (b *Builder) WithStandardTestData() *Builder {
	return b.
		WithPlate("34ABC123", ID("p-ayse"), Owner("Ayşe Yılmaz"), CreatedAt(StandardTime.Add(-72*time.Hour))).
		WithPlate("06XYZ99", ID("p-mehmet"), Owner("Mehmet Demir"), CreatedAt(StandardTime.Add(-48*time.Hour))).
		WithPlate("35TT001", ID("p-zeynep"), Owner("Zeynep Kaya"), CreatedAt(StandardTime.Add(-24*time.Hour))).
		WithBlacklisted("16BB202", StandardTime.Add(-36*time.Hour)).
		WithBlacklisted("01ZZ777", StandardTime.Add(-12*time.Hour)).
		WithEntry("34ABC123", StandardTime).
		WithEntry("06XYZ99", StandardTime.Add(time.Minute))
}
