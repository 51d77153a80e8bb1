package rotation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/grumpylemon/family-clean-sub002/availability"
	"github.com/grumpylemon/family-clean-sub002/fairness"
	"github.com/grumpylemon/family-clean-sub002/internal/hooks"
	"github.com/grumpylemon/family-clean-sub002/internal/logging"
	"github.com/grumpylemon/family-clean-sub002/internal/metrics"
	"github.com/grumpylemon/family-clean-sub002/strategy"
	"github.com/grumpylemon/family-clean-sub002/types"
)

// Engine decides who should be assigned a chore.
//
// Engine is the main entry point of the library. It orchestrates:
//   - Workload and fairness computation from completion history
//   - Eligibility filtering (active, capacity, skills, allow/avoid lists)
//   - Strategy dispatch across the seven built-in selection strategies
//   - Calendar conflict detection via the availability oracle
//   - Escalation to alternative candidates when conflicts block assignment
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Independent decisions share no mutable state except the availability
//     cache, whose writes are idempotent per member and date
//
// The engine never writes: applying a RotationResult to the chore store
// (and advancing the round-robin cursor) is the caller's responsibility,
// guarded by optimistic concurrency since workload snapshots can be stale
// by the time a decision is applied.
type Engine struct {
	cfg     Config
	members types.MemberDirectory
	chores  types.ChoreStore
	history types.CompletionHistoryStore

	fairness *fairness.Engine
	oracle   *availability.Oracle
	registry *strategy.Registry

	hooks   *types.Hooks
	metrics types.MetricsCollector
	logger  types.Logger
	now     func() time.Time
}

// NewEngine creates a new rotation Engine with the provided configuration
// and collaborators.
//
// Returns a concrete *Engine struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces for
// testing if needed.
//
// Parameters:
//   - cfg: Runtime configuration with parsed durations
//   - members: Directory of active family members
//   - chores: Store of open chores
//   - history: Store of completion records
//   - opts: Optional configuration (calendar provider, hooks, metrics, logger)
//
// Returns:
//   - *Engine: Initialized engine instance
//   - error: Validation error if configuration or collaborators are invalid
//
// Example:
//
//	cfg := rotation.DefaultConfig()
//	engine, err := rotation.NewEngine(&cfg, members, chores, history,
//	    rotation.WithCalendarProvider(calendar),
//	    rotation.WithLogger(logger))
func NewEngine(
	cfg *Config,
	members types.MemberDirectory,
	chores types.ChoreStore,
	history types.CompletionHistoryStore,
	opts ...Option,
) (*Engine, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if members == nil {
		return nil, ErrMemberDirectoryRequired
	}
	if chores == nil {
		return nil, ErrChoreStoreRequired
	}
	if history == nil {
		return nil, ErrHistoryStoreRequired
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Apply options
	options := &engineOptions{now: time.Now}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(loggerInstance)

	hooksInstance := options.hooks
	if hooksInstance == nil {
		nopHooks := hooks.NewNop()
		hooksInstance = &nopHooks
	}

	fairnessEngine, err := fairness.NewEngine(history, chores,
		fairness.WithWindows(cfg.Fairness.WorkloadWindow, cfg.Fairness.WeeklyWindow),
		fairness.WithThresholds(cfg.Fairness.EquityThreshold, cfg.Fairness.VarianceLimit, cfg.Fairness.IndividualFloor),
		fairness.WithLogger(loggerInstance),
		fairness.WithMetrics(metricsCollector),
		fairness.WithNowFunc(options.now),
	)
	if err != nil {
		return nil, err
	}

	var oracle *availability.Oracle
	if options.calendar != nil {
		oracle, err = availability.NewOracle(options.calendar,
			availability.WithCache(availability.NewEventCache(cfg.Availability.CacheTTL,
				availability.WithCacheNowFunc(options.now))),
			availability.WithLookupTimeout(cfg.Availability.LookupTimeout),
			availability.WithLogger(loggerInstance),
			availability.WithMetrics(metricsCollector),
			availability.WithNowFunc(options.now),
			availability.WithRetryRandSource(options.rng),
		)
		if err != nil {
			return nil, err
		}
	}

	registryOpts := []strategy.RegistryOption{
		strategy.WithRegistryLogger(loggerInstance),
		strategy.WithRegistryRandSource(options.rng),
	}
	if oracle != nil {
		registryOpts = append(registryOpts, strategy.WithAvailability(oracle))
	}
	registry := strategy.NewRegistry(registryOpts...)

	for _, s := range options.strategies {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}

	return &Engine{
		cfg:      *cfg,
		members:  members,
		chores:   chores,
		history:  history,
		fairness: fairnessEngine,
		oracle:   oracle,
		registry: registry,
		hooks:    hooksInstance,
		metrics:  metricsCollector,
		logger:   loggerInstance,
		now:      options.now,
	}, nil
}

// Fairness returns the engine's fairness component for direct workload,
// equity, and trend queries.
func (e *Engine) Fairness() *fairness.Engine {
	return e.fairness
}

// Availability returns the engine's availability oracle, or nil when no
// calendar provider was configured.
func (e *Engine) Availability() *availability.Oracle {
	return e.oracle
}

// Registry returns the strategy registry, for inspecting or extending the
// registered strategies.
func (e *Engine) Registry() *strategy.Registry {
	return e.registry
}

// DetermineNextAssignee decides who should be assigned the chore.
//
// The decision pipeline is: resolve strategy, compute workloads, filter
// eligible members, dispatch to the strategy, detect conflicts (when the
// family enables intelligent scheduling), and escalate to alternative
// candidates when blocking conflicts remain.
//
// The method never returns a Go error; every failure mode is encoded in
// the result. Success true carries AssignedMemberID, success false carries
// ErrorMessage — and on conflict failures the original candidate is still
// exposed through AlternativeAssignments for manual override.
//
// Parameters:
//   - ctx: Context for cancellation and deadline
//   - chore: Chore in need of an assignee
//   - family: Family rotation configuration
//
// Returns:
//   - *types.RotationResult: Decision outcome, never nil
func (e *Engine) DetermineNextAssignee(ctx context.Context, chore *types.Chore, family *types.Family) *types.RotationResult {
	start := e.now()

	if chore == nil {
		return e.fail(ctx, "", "", start, ErrChoreRequired, ErrChoreRequired.Error())
	}
	if family == nil {
		return e.fail(ctx, chore.ID, "", start, ErrFamilyRequired, ErrFamilyRequired.Error())
	}

	// Strategy resolution: chore override, family default, round robin.
	name := chore.Rotation.Strategy
	if name == "" {
		name = family.DefaultStrategy
	}
	strat := e.registry.Resolve(name)

	members, err := e.members.ListActiveMembers(ctx, family.ID)
	if err != nil {
		return e.fail(ctx, chore.ID, strat.Name(), start, err, "Rotation engine error: "+err.Error())
	}

	workloads, err := e.fairness.CalculateMemberWorkloads(ctx, family.ID, members)
	if err != nil {
		return e.fail(ctx, chore.ID, strat.Name(), start, err, "Rotation engine error: "+err.Error())
	}

	candidates := eligibleCandidates(chore, members, workloads)
	e.metrics.RecordEligibleCount(len(candidates))
	if len(candidates) == 0 {
		return e.fail(ctx, chore.ID, strat.Name(), start, ErrNoEligibleMembers, "No eligible members available")
	}

	req := &types.SelectionRequest{
		Chore:      chore,
		Family:     family,
		Candidates: candidates,
		Now:        e.now(),
	}

	pick, err := strat.Select(ctx, req)
	if err != nil {
		return e.fail(ctx, chore.ID, strat.Name(), start, err, "Rotation engine error: "+err.Error())
	}

	// Strategy-attached conflicts count only when the family opted into
	// intelligent scheduling.
	var conflicts []types.ScheduleConflict
	if family.EnableIntelligentScheduling {
		conflicts = append(conflicts, pick.Conflicts...)
		// The calendar-aware strategy already attached its pick's calendar
		// conflicts; re-checking would only duplicate them from the cache.
		checkCalendar := strat.Name() != types.StrategyCalendarAware
		conflicts = append(conflicts, e.conflictCheck(ctx, chore, family, req.CandidateByID(pick.MemberID), checkCalendar)...)
	}
	e.recordConflicts(conflicts)

	if !types.HasBlocking(conflicts) {
		result := &types.RotationResult{
			Success:           true,
			ChoreID:           chore.ID,
			AssignedMemberID:  pick.MemberID,
			Strategy:          strat.Name(),
			FairnessScore:     pick.FairnessScore,
			ConflictsDetected: conflicts,
		}
		e.metrics.RecordDecision(string(strat.Name()), true, e.now().Sub(start).Seconds())
		e.fireOnAssigned(ctx, result)

		return result
	}

	return e.escalate(ctx, strat, req, pick, conflicts, start)
}

// escalate searches the remaining eligible members for a candidate free of
// blocking conflicts. When one exists it is promoted to assignee and the
// blocked original is surfaced among the alternatives; when none qualify
// the decision fails but still exposes the original candidate and its
// conflicts for manual override.
func (e *Engine) escalate(
	ctx context.Context,
	strat types.Strategy,
	req *types.SelectionRequest,
	pick *types.ScoredCandidate,
	conflicts []types.ScheduleConflict,
	start time.Time,
) *types.RotationResult {
	chore := req.Chore
	e.logger.Info("blocking conflicts detected, searching alternatives",
		"choreID", chore.ID, "memberID", pick.MemberID, "conflicts", len(conflicts))
	e.fireOnEscalated(ctx, chore.ID, conflicts)

	blocked := types.AlternativeAssignment{
		MemberID:  pick.MemberID,
		Score:     pick.FairnessScore,
		Conflicts: conflicts,
	}

	alternatives := []types.AlternativeAssignment{blocked}
	for _, alt := range e.rankedAlternatives(ctx, strat, req, pick.MemberID) {
		altConflicts := append([]types.ScheduleConflict(nil), e.conflictCheck(ctx, chore, req.Family, req.CandidateByID(alt.MemberID), true)...)
		e.recordConflicts(altConflicts)

		if !types.HasBlocking(altConflicts) {
			// Promote the clean alternative to assignee.
			result := &types.RotationResult{
				Success:                true,
				ChoreID:                chore.ID,
				AssignedMemberID:       alt.MemberID,
				Strategy:               strat.Name(),
				FairnessScore:          alt.Score,
				ConflictsDetected:      altConflicts,
				AlternativeAssignments: alternatives,
			}
			e.metrics.RecordEscalation(true)
			e.metrics.RecordDecision(string(strat.Name()), true, e.now().Sub(start).Seconds())
			e.fireOnAssigned(ctx, result)

			return result
		}

		if len(alternatives) < e.cfg.MaxAlternatives {
			alt.Conflicts = altConflicts
			alternatives = append(alternatives, alt)
		}
	}

	e.metrics.RecordEscalation(false)

	return e.failWithAlternatives(ctx, chore.ID, strat.Name(), start, conflicts, alternatives)
}

// rankedAlternatives orders the remaining candidates by the strategy's own
// per-candidate scores, highest first. Scoring failures fall back to
// request order.
func (e *Engine) rankedAlternatives(ctx context.Context, strat types.Strategy, req *types.SelectionRequest, exclude string) []types.AlternativeAssignment {
	scores, err := strat.ScoreCandidates(ctx, req)
	if err != nil {
		e.logger.Warn("candidate scoring failed, using request order",
			"strategy", strat.Name(), "error", err)
		scores = map[string]float64{}
	}

	alternatives := make([]types.AlternativeAssignment, 0, len(req.Candidates))
	for i := range req.Candidates {
		id := req.Candidates[i].Member.ID
		if id == exclude {
			continue
		}
		alternatives = append(alternatives, types.AlternativeAssignment{
			MemberID: id,
			Score:    scores[id],
		})
	}
	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].Score > alternatives[j].Score
	})

	return alternatives
}

// conflictCheck gathers capacity and calendar conflicts for one candidate.
// Only called when the family enables intelligent scheduling.
func (e *Engine) conflictCheck(ctx context.Context, chore *types.Chore, family *types.Family, cand *types.Candidate, checkCalendar bool) []types.ScheduleConflict {
	if cand == nil {
		return nil
	}

	conflicts := e.capacityConflicts(ctx, chore, family, cand)

	if checkCalendar && e.oracle != nil {
		duration := chore.EstimatedDuration
		if duration <= 0 {
			duration = types.DefaultCompletionTime
		}
		res := e.oracle.CheckMemberAvailability(ctx, &cand.Member, chore.DueDate, duration)
		conflicts = append(conflicts, res.Conflicts...)
	}

	return conflicts
}

// capacityConflicts flags assignments that would fill the candidate's
// weekly allowance or exceed its daily limit. Both are overridable
// warnings; members already over their weekly allowance never reach this
// point because the eligibility filter drops them.
func (e *Engine) capacityConflicts(ctx context.Context, chore *types.Chore, family *types.Family, cand *types.Candidate) []types.ScheduleConflict {
	var conflicts []types.ScheduleConflict

	weeklyCap := cand.Member.WeeklyAllowance()
	if cand.Workload.WeeklyChores+1 >= weeklyCap {
		conflicts = append(conflicts, types.ScheduleConflict{
			Type:     types.ConflictCapacity,
			Severity: types.SeverityHigh,
			Description: fmt.Sprintf("assignment fills weekly allowance of %d chores (current: %d)",
				weeklyCap, cand.Workload.WeeklyChores),
			CanOverride: true,
		})
	}

	dailyCap := cand.Member.DailyLimit()
	sameDay := e.openChoresDueSameDay(ctx, family.ID, cand.Member.ID, chore)
	if sameDay+1 > dailyCap {
		conflicts = append(conflicts, types.ScheduleConflict{
			Type:     types.ConflictCapacity,
			Severity: types.SeverityHigh,
			Description: fmt.Sprintf("assignment exceeds daily limit of %d chores (due same day: %d)",
				dailyCap, sameDay),
			CanOverride: true,
		})
	}

	return conflicts
}

// openChoresDueSameDay counts the member's open chores due on the same
// calendar day as the chore being assigned. Store failures count as zero;
// capacity checking is advisory and must not fail a decision.
func (e *Engine) openChoresDueSameDay(ctx context.Context, familyID, memberID string, chore *types.Chore) int {
	open, err := e.chores.ListOpenChores(ctx, familyID)
	if err != nil {
		e.logger.Warn("open chore lookup failed, skipping daily capacity check",
			"familyID", familyID, "error", err)

		return 0
	}

	y, m, d := chore.DueDate.Date()
	count := 0
	for i := range open {
		if open[i].ID == chore.ID || open[i].AssignedTo != memberID {
			continue
		}
		oy, om, od := open[i].DueDate.Date()
		if oy == y && om == m && od == d {
			count++
		}
	}

	return count
}

// eligibleCandidates filters members down to valid assignment candidates:
// active, below capacity, on the allow-list when one exists, off the avoid
// list unless the chore is urgent, and holding the required skills when at
// least one member holds the full set (otherwise all members stay in and
// the skill-based strategy scores partial matches).
func eligibleCandidates(chore *types.Chore, members []types.Member, workloads []types.MemberWorkload) []types.Candidate {
	byID := make(map[string]types.MemberWorkload, len(workloads))
	for i := range workloads {
		byID[workloads[i].MemberID] = workloads[i]
	}

	allowed := map[string]bool{}
	for _, id := range chore.Rotation.EligibleMembers {
		allowed[id] = true
	}
	avoided := map[string]bool{}
	for _, id := range chore.Rotation.AvoidMembers {
		avoided[id] = true
	}
	urgent := chore.Rotation.Priority == types.PriorityUrgent

	required := chore.Rotation.RequiredSkills
	anyFullMatch := false
	if len(required) > 0 {
		for i := range members {
			if members[i].HasAllSkills(required) {
				anyFullMatch = true
				break
			}
		}
	}

	candidates := make([]types.Candidate, 0, len(members))
	for i := range members {
		m := members[i]
		if !m.Active {
			continue
		}
		if len(allowed) > 0 && !allowed[m.ID] {
			continue
		}
		if avoided[m.ID] && !urgent {
			continue
		}
		if anyFullMatch && !m.HasAllSkills(required) {
			continue
		}

		wl, ok := byID[m.ID]
		if !ok {
			wl = types.NewDefaultWorkload(m.ID)
		}
		if wl.CapacityUtilization >= 1.0 {
			continue
		}

		candidates = append(candidates, types.Candidate{Member: m, Workload: wl})
	}

	return candidates
}

func (e *Engine) recordConflicts(conflicts []types.ScheduleConflict) {
	for _, c := range conflicts {
		e.metrics.RecordConflict(string(c.Type), string(c.Severity))
	}
}

func (e *Engine) fail(ctx context.Context, choreID string, strat types.StrategyName, start time.Time, err error, msg string) *types.RotationResult {
	e.logger.Warn("rotation decision failed", "choreID", choreID, "strategy", strat, "error", err)
	e.metrics.RecordDecision(string(strat), false, e.now().Sub(start).Seconds())
	e.fireOnError(ctx, choreID, err)

	return &types.RotationResult{
		Success:      false,
		ChoreID:      choreID,
		Strategy:     strat,
		ErrorMessage: msg,
	}
}

func (e *Engine) failWithAlternatives(
	ctx context.Context,
	choreID string,
	strat types.StrategyName,
	start time.Time,
	conflicts []types.ScheduleConflict,
	alternatives []types.AlternativeAssignment,
) *types.RotationResult {
	err := fmt.Errorf("no candidate free of blocking conflicts for chore %s", choreID)
	e.logger.Warn("rotation decision failed", "choreID", choreID, "strategy", strat, "error", err)
	e.metrics.RecordDecision(string(strat), false, e.now().Sub(start).Seconds())
	e.fireOnError(ctx, choreID, err)

	return &types.RotationResult{
		Success:                false,
		ChoreID:                choreID,
		Strategy:               strat,
		ConflictsDetected:      conflicts,
		AlternativeAssignments: alternatives,
		ErrorMessage:           "All candidates have unresolved conflicts; manual override required",
	}
}

// Hooks run in background goroutines so callbacks never block a decision.
// Hook errors are logged, never propagated.

func (e *Engine) fireOnAssigned(ctx context.Context, result *types.RotationResult) {
	if e.hooks.OnAssigned == nil {
		return
	}
	go func() {
		if err := e.hooks.OnAssigned(ctx, result); err != nil {
			e.logger.Warn("OnAssigned hook failed", "choreID", result.ChoreID, "error", err)
		}
	}()
}

func (e *Engine) fireOnEscalated(ctx context.Context, choreID string, conflicts []types.ScheduleConflict) {
	if e.hooks.OnEscalated == nil {
		return
	}
	go func() {
		if err := e.hooks.OnEscalated(ctx, choreID, conflicts); err != nil {
			e.logger.Warn("OnEscalated hook failed", "choreID", choreID, "error", err)
		}
	}()
}

func (e *Engine) fireOnError(ctx context.Context, choreID string, cause error) {
	if e.hooks.OnError == nil {
		return
	}
	go func() {
		if err := e.hooks.OnError(ctx, choreID, cause); err != nil {
			e.logger.Warn("OnError hook failed", "choreID", choreID, "error", err)
		}
	}()
}
