package config

// Template is the starter file written by `crackedice init`.
const Template = `# Cracked Ice Configuration
# =========================
# Every key can be overridden with a CRACKEDICE_* environment variable
# (for example CRACKEDICE_DATA_PATH) or the matching command-line flag.

# The schedule artifact produced by the offline fetch job.
data:
  path: "data/schedule.json"
  season: "20242025"

# Lineup slots limit how many of your rostered teams can start on one day.
# A candidate only adds a start on days where fewer roster teams play.
lineup:
  slots_per_day: 2

# Tiers split the season at the fantasy playoff boundary and grade each team
# on both sides of it.
#
# Either give the first playoff day directly:
#   playoff_start: "2025-02-24"
#
# Or give the season start and the fantasy week the playoffs begin.
# Weeks start on Monday; week 1 contains season_start.
tiers:
  season_start: "2024-10-08"
  playoff_week: 21

  # Strategy picks the score weighting: balanced, off_night or volume.
  strategy: balanced

  # Explicit weights replace the strategy's.
  # weights:
  #   off_night: 0.6
  #   game_volume: 0.4

# HTTP service settings for ` + "`crackedice serve`" + `.
server:
  addr: ":8080"
  cors_origins: ["*"]

# Logging goes to stderr. Levels: debug, info, warn, error.
log:
  level: info
  format: text     # text or json
`
