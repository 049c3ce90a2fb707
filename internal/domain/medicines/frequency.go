package medicines

import "fmt"

// FreqMeta es la metadata derivada de una frecuencia: cuántas horas por día
// exige y cada cuántos días calendario se repite.
type FreqMeta struct {
	RequiredTimes int
	StepDays      int
}

// Tabla fija de frecuencias conocidas.
var freqTable = map[Frequency]FreqMeta{
	FreqOnceDaily:   {RequiredTimes: 1, StepDays: 1},
	FreqTwiceDaily:  {RequiredTimes: 2, StepDays: 1},
	FreqThriceDaily: {RequiredTimes: 3, StepDays: 1},
	FreqOnceWeekly:  {RequiredTimes: 1, StepDays: 7},
	FreqTwiceWeekly: {RequiredTimes: 2, StepDays: 7},
}

// ResolveFrequency valida la frecuencia y deriva su metadata.
// CUSTOM exige customTimes en 1..6 y customStep en 1..30.
// Un identificador desconocido se rechaza con error de validación: el sistema
// anterior degradaba en silencio a ONCE_DAILY, lo que enmascaraba typos del
// caller sin que nadie se enterara.
func ResolveFrequency(f Frequency, customTimes, customStep int) (FreqMeta, error) {
	if f == FreqCustom {
		if customTimes < 1 || customTimes > 6 {
			return FreqMeta{}, fmt.Errorf("%w: custom frequency: times per day must be 1-6", ErrInvalidInput)
		}
		if customStep < 1 || customStep > 30 {
			return FreqMeta{}, fmt.Errorf("%w: custom frequency: repeat days must be 1-30", ErrInvalidInput)
		}
		return FreqMeta{RequiredTimes: customTimes, StepDays: customStep}, nil
	}

	meta, ok := freqTable[f]
	if !ok {
		return FreqMeta{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, string(f))
	}
	return meta, nil
}
