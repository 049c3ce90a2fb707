package medicines

// Frequency identifica el patrón de dosificación de una medicina.
// @Enum ONCE_DAILY, TWICE_DAILY, THRICE_DAILY, ONCE_WEEKLY, TWICE_WEEKLY, CUSTOM
type Frequency string

const (
	FreqOnceDaily   Frequency = "ONCE_DAILY"
	FreqTwiceDaily  Frequency = "TWICE_DAILY"
	FreqThriceDaily Frequency = "THRICE_DAILY"
	FreqOnceWeekly  Frequency = "ONCE_WEEKLY"
	FreqTwiceWeekly Frequency = "TWICE_WEEKLY"

	// FreqCustom exige RequiredTimes y StepDays explícitos del caller.
	FreqCustom Frequency = "CUSTOM"
)
