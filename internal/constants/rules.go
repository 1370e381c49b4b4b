package constants

const (
	MinDailyHours  = 1
	MaxDailyHours  = 8
	MinWeeklyHours = 1

	// RALength is the number of digits in a student registration number
	RALength = 13

	MinTccStudentCount             = 1
	MinApoioGeralDescriptionLength = 4000

	// ClosureWindowDays is how many days before endDate a closure may be requested
	ClosureWindowDays = 7
)
