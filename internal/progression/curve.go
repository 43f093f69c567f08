// Package progression implements the level curve: cumulative XP thresholds
// per level, level lookup from XP, and progress-bar math.
package progression

// FallbackXPPerLevel is the per-level XP requirement used for levels the
// configured table does not define: reaching level N+1 from level N costs
// N*100 XP.
const FallbackXPPerLevel = 100

// LevelRequirement is one row of the configured level table.
type LevelRequirement struct {
	Level           int `json:"level"`
	RequiredXPTotal int `json:"required_xp_total"`
}

// Curve answers level/XP questions from a configured table, falling back to
// the formula for levels past the end of the table. A Curve is immutable
// after construction and safe for concurrent reads.
type Curve struct {
	// cumulative[l] is the total XP required to reach level l.
	// cumulative[1] is always 0.
	cumulative map[int]int
	maxLevel   int
}

// NewCurve builds a curve from table rows. Rows may arrive in any order;
// rows for level 1 are normalized to a zero threshold. A nil or empty table
// yields a pure formula-based curve.
func NewCurve(table []LevelRequirement) *Curve {
	c := &Curve{cumulative: make(map[int]int, len(table)+1)}
	c.cumulative[1] = 0
	c.maxLevel = 1
	for _, row := range table {
		if row.Level < 1 {
			continue
		}
		if row.Level == 1 {
			c.cumulative[1] = 0
			continue
		}
		c.cumulative[row.Level] = row.RequiredXPTotal
		if row.Level > c.maxLevel {
			c.maxLevel = row.Level
		}
	}
	return c
}

// XPRequiredForLevel returns the cumulative XP threshold for reaching level.
// Level 1 (and below) requires 0. Levels missing from the table are
// estimated with the fallback formula.
func (c *Curve) XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if total, ok := c.cumulative[level]; ok {
		return total
	}
	// Extend from the highest known threshold using the formula.
	base := level
	if base > c.maxLevel {
		base = c.maxLevel
	}
	// Walk down to the nearest defined level, then accumulate forward.
	for base > 1 {
		if _, ok := c.cumulative[base]; ok {
			break
		}
		base--
	}
	total := c.cumulative[base]
	for l := base; l < level; l++ {
		total += l * FallbackXPPerLevel
	}
	return total
}

// LevelFromXP returns the largest level whose cumulative threshold is at or
// below xp. Always at least 1, even for negative xp.
func (c *Curve) LevelFromXP(xp int) int {
	if xp < 0 {
		return 1
	}
	level := 1
	for xp >= c.XPRequiredForLevel(level+1) {
		level++
	}
	return level
}

// XPNeededForLevel returns the XP span of the given level: how much XP is
// needed to go from it to the next.
func (c *Curve) XPNeededForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return c.XPRequiredForLevel(level+1) - c.XPRequiredForLevel(level)
}

// XPWithinLevel returns how far into the given level xp sits. The value is
// stored unclamped; Progress clamps for display.
func (c *Curve) XPWithinLevel(xp, level int) int {
	return xp - c.XPRequiredForLevel(level)
}

// Progress returns the progress-bar fraction for the given xp and level,
// clamped to [0,1].
func (c *Curve) Progress(xp, level int) float64 {
	needed := c.XPNeededForLevel(level)
	if needed <= 0 {
		return 0
	}
	frac := float64(c.XPWithinLevel(xp, level)) / float64(needed)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
