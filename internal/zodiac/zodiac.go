// Package zodiac maps calendar dates to western and animal-year signs and
// computes the age predicates used when validating birth dates.
// Every function is pure; callers supply "today".
package zodiac

import (
	"time"

	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

const (
	// MaxAge is the oldest accepted age in whole years.
	MaxAge = 135

	// AdultAge is the age at which a person counts as an adult.
	AdultAge = 18
)

// Sign is the name of a western or animal-year sign.
type Sign string

// Unknown is returned for month/day pairs outside every range.
const Unknown Sign = "Unknown"

// Western signs.
const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Animal-year signs.
const (
	Monkey  Sign = "Monkey"
	Rooster Sign = "Rooster"
	Dog     Sign = "Dog"
	Pig     Sign = "Pig"
	Rat     Sign = "Rat"
	Ox      Sign = "Ox"
	Tiger   Sign = "Tiger"
	Rabbit  Sign = "Rabbit"
	Dragon  Sign = "Dragon"
	Snake   Sign = "Snake"
	Horse   Sign = "Horse"
	Goat    Sign = "Goat"
)

// span is an inclusive range that starts in one month and ends in the next.
type span struct {
	sign      Sign
	fromMonth time.Month
	fromDay   int
	toMonth   time.Month
	toDay     int
}

var westernSpans = []span{
	{Aries, time.March, 21, time.April, 19},
	{Taurus, time.April, 20, time.May, 20},
	{Gemini, time.May, 21, time.June, 20},
	{Cancer, time.June, 21, time.July, 22},
	{Leo, time.July, 23, time.August, 22},
	{Virgo, time.August, 23, time.September, 22},
	{Libra, time.September, 23, time.October, 22},
	{Scorpio, time.October, 23, time.November, 21},
	{Sagittarius, time.November, 22, time.December, 21},
	{Capricorn, time.December, 22, time.January, 19},
	{Aquarius, time.January, 20, time.February, 18},
	{Pisces, time.February, 19, time.March, 20},
}

// animalCycle is indexed by year mod 12; year%12 == 0 is Monkey.
var animalCycle = [12]Sign{
	Monkey,  // 0
	Rooster, // 1
	Dog,     // 2
	Pig,     // 3
	Rat,     // 4
	Ox,      // 5
	Tiger,   // 6
	Rabbit,  // 7
	Dragon,  // 8
	Snake,   // 9
	Horse,   // 10
	Goat,    // 11
}

// WesternSign returns the western sign for a month and day.
func WesternSign(month time.Month, day int) Sign {
	if day < 1 || day > 31 {
		return Unknown
	}
	for _, s := range westernSpans {
		if (month == s.fromMonth && day >= s.fromDay) || (month == s.toMonth && day <= s.toDay) {
			return s.sign
		}
	}
	return Unknown
}

// ChineseSign returns the animal-year sign for year. The cycle changes on
// January 1, not on the lunar new year.
func ChineseSign(year int) Sign {
	idx := year % len(animalCycle)
	if idx < 0 {
		idx += len(animalCycle)
	}
	return animalCycle[idx]
}

// Age returns the whole years elapsed from birth to today.
func Age(birth, today civil.Date) int {
	age := today.Year - birth.Year
	if today.Month < birth.Month || (today.Month == birth.Month && today.Day < birth.Day) {
		age--
	}
	return age
}

// IsAdult reports whether age has reached AdultAge.
func IsAdult(age int) bool { return age >= AdultAge }

// IsBirthdayToday reports whether birth and today share month and day.
func IsBirthdayToday(birth, today civil.Date) bool {
	return birth.Month == today.Month && birth.Day == today.Day
}

// IsFutureDate reports whether d is strictly after today.
func IsFutureDate(d, today civil.Date) bool { return d.After(today) }

// ExceedsMaxAge reports whether age is above MaxAge.
func ExceedsMaxAge(age int) bool { return age > MaxAge }

// Profile is everything derived from a birth date on a given day.
type Profile struct {
	Age         int  `json:"age"`
	IsAdult     bool `json:"is_adult"`
	SunSign     Sign `json:"sun_sign"`
	ChineseSign Sign `json:"chinese_sign"`
	IsBirthday  bool `json:"is_birthday"`
}

// Derive computes the Profile of birth as seen on today.
func Derive(birth, today civil.Date) Profile {
	age := Age(birth, today)
	return Profile{
		Age:         age,
		IsAdult:     IsAdult(age),
		SunSign:     WesternSign(birth.Month, birth.Day),
		ChineseSign: ChineseSign(birth.Year),
		IsBirthday:  IsBirthdayToday(birth, today),
	}
}

// Signs returns the western signs starting with Aries.
func Signs() []Sign {
	out := make([]Sign, len(westernSpans))
	for i := range westernSpans {
		out[i] = westernSpans[i].sign
	}
	return out
}

// ChineseSigns returns the animal-year cycle in index order.
func ChineseSigns() []Sign {
	out := make([]Sign, len(animalCycle))
	copy(out, animalCycle[:])
	return out
}
