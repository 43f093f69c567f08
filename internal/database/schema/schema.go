package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Characters

CREATE TABLE IF NOT EXISTS characters (
    character_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID UNIQUE NOT NULL,
    name VARCHAR(100) NOT NULL,
    level INTEGER NOT NULL DEFAULT 1,
    xp INTEGER NOT NULL DEFAULT 0,
    hp INTEGER NOT NULL DEFAULT 100,
    max_hp INTEGER NOT NULL DEFAULT 100,
    gold INTEGER NOT NULL DEFAULT 0,
    gems INTEGER NOT NULL DEFAULT 0,
    scores JSONB NOT NULL DEFAULT '{}',
    streaks JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Activities

CREATE TABLE IF NOT EXISTS habits (
    habit_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL,
    title VARCHAR(200) NOT NULL,
    notes TEXT,
    attributes JSONB NOT NULL DEFAULT '[]',
    difficulty VARCHAR(20) NOT NULL DEFAULT 'easy',
    streak INTEGER NOT NULL DEFAULT 0,
    negative_streak INTEGER NOT NULL DEFAULT 0,
    last_completed TIMESTAMPTZ,
    last_action_date DATE,
    position INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id);

CREATE TABLE IF NOT EXISTS dailies (
    daily_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL,
    title VARCHAR(200) NOT NULL,
    notes TEXT,
    attributes JSONB NOT NULL DEFAULT '[]',
    difficulty VARCHAR(20) NOT NULL DEFAULT 'easy',
    streak INTEGER NOT NULL DEFAULT 0,
    completed_today BOOLEAN NOT NULL DEFAULT FALSE,
    last_completed TIMESTAMPTZ,
    position INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_dailies_user ON dailies(user_id);

CREATE TABLE IF NOT EXISTS tasks (
    task_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL,
    title VARCHAR(200) NOT NULL,
    notes TEXT,
    attributes JSONB NOT NULL DEFAULT '[]',
    difficulty VARCHAR(20) NOT NULL DEFAULT 'easy',
    due_date DATE,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    completed_at TIMESTAMPTZ,
    position INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);

-- Monsters

CREATE TABLE IF NOT EXISTS monsters (
    monster_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL,
    name VARCHAR(100) NOT NULL,
    hp INTEGER NOT NULL,
    max_hp INTEGER NOT NULL,
    weakness JSONB NOT NULL DEFAULT '[]',
    reward_gold INTEGER NOT NULL DEFAULT 0,
    reward_xp INTEGER NOT NULL DEFAULT 0,
    defeated BOOLEAN NOT NULL DEFAULT FALSE,
    spawn_date DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_monsters_user_spawn ON monsters(user_id, spawn_date);

-- Rollover markers

CREATE TABLE IF NOT EXISTS reset_markers (
    user_id UUID PRIMARY KEY,
    last_reset_date DATE NOT NULL
);

-- Sessions

CREATE TABLE IF NOT EXISTS sessions (
    token_hash TEXT PRIMARY KEY,
    user_id UUID NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
