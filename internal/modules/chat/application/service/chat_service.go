package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"FitBuddy/internal/config"
	"FitBuddy/internal/modules/ai/infrastructure/intent"
	"FitBuddy/internal/modules/ai/infrastructure/llm"
	"FitBuddy/internal/modules/ai/infrastructure/retrieval"
	"FitBuddy/internal/modules/ai/infrastructure/rules"
	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/application/dto/respond"
	"FitBuddy/internal/modules/chat/domain/entity"
	chatRepository "FitBuddy/internal/modules/chat/domain/repository"
	"FitBuddy/pkg/util"
	"FitBuddy/pkg/xerr"
	"FitBuddy/pkg/zlog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 响应来源标记，随 assistant 消息落库
const (
	sourceRule = "rule-based"
	sourceAI   = "ai"
)

const maxTitleLen = 50

var (
	// 追问生成输出的清洗：去掉 "Here are ..." 这类开场白和行首的序号/项目符号
	followUpPreamble = regexp.MustCompile(`(?i)here are.*?:\s*`)
	followUpBullet   = regexp.MustCompile(`^[-\d.]+\s*`)
	titleQuoteTrim   = "\"'“”"
)

const followUpSystemPrompt = "You are an expert conversationalist. Generate 3 short, relevant, and engaging follow-up questions that the user might want to ask next. \n\nRULES:\n1. Return ONLY the questions.\n2. Separate them by newlines.\n3. Do NOT include numbering (1., -) or bullets.\n4. Do NOT output \"Here are the questions\" or any thinking tags like <think>.\n5. Keep them short (max 10 words)."

type ChatService interface {
	// Chat 处理一轮对话：意图分流、可选检索增强、调用模型、
	// 生成标题并与持久化状态对账
	Chat(ctx context.Context, userID string, req request.ChatRequest) (*respond.ChatRespond, error)
	// FollowUps 基于最后一条 assistant 回答生成至多 3 条追问建议。
	// 尽力而为：任何失败都降级为空列表，不向调用方返回错误
	FollowUps(ctx context.Context, req request.FollowUpRequest) []string
	// Unload 请求本地后端卸载模型，非本地模型为 no-op
	Unload(ctx context.Context, model string) error
	ListLocalModels(ctx context.Context) ([]llm.LocalModel, error)
	// Suggestions 从语料库随机抽取开场建议
	Suggestions(count int) []string
}

type chatServiceImpl struct {
	router      llm.Provider
	settings    SettingsService
	sessionRepo chatRepository.SessionRepository
	messageRepo chatRepository.MessageRepository
}

func NewChatService(router llm.Provider, settings SettingsService,
	sessionRepo chatRepository.SessionRepository, messageRepo chatRepository.MessageRepository) ChatService {
	return &chatServiceImpl{
		router:      router,
		settings:    settings,
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
	}
}

func (s *chatServiceImpl) Chat(ctx context.Context, userID string, req request.ChatRequest) (*respond.ChatRespond, error) {
	if len(req.Messages) == 0 {
		return nil, xerr.New(xerr.BadRequest, "Messages required")
	}
	lastUser := lastUserMessage(req.Messages)
	if lastUser == "" {
		return nil, xerr.New(xerr.BadRequest, "No user message found")
	}

	target := llm.ParseTarget(req.Model)
	settings := s.settings.Resolve(ctx, req.Model, userID)
	classified := intent.Classify(lastUser)

	answer, source := ruleAnswer(lastUser, classified)
	if source == "" {
		var err error
		answer, err = s.aiAnswer(ctx, target, settings, req.Messages, lastUser)
		if err != nil {
			return nil, err
		}
		source = sourceAI
	}

	answer = strings.TrimSpace(llm.StripReasoning(answer))

	// 会话的首轮对话才生成标题；失败只降级为无标题
	var title string
	if req.RegenerateId == "" && isFirstExchange(req.Messages) {
		title = s.generateTitle(ctx, target, lastUser)
	}

	resp := &respond.ChatRespond{
		Response:      answer,
		Title:         title,
		RegeneratedId: req.RegenerateId,
	}

	// 游客不落库，认证用户带 sessionId 才做持久化对账。
	// 写失败只记日志，回答本身照常返回
	if userID != "" && req.SessionId != "" {
		s.reconcile(ctx, userID, req, lastUser, answer, string(classified.Intent), source, title, resp)
	}
	return resp, nil
}

// ruleAnswer 尝试规则路径。命中返回 (答案, sourceRule)；
// 未命中（复杂问题或 FAQ 未命中）返回空 source，由调用方走 AI 路径。
// 规则意图但参数不全时返回澄清提示，仍然绕开模型调用。
func ruleAnswer(lastUser string, classified intent.Result) (string, string) {
	switch classified.Intent {
	case intent.IntentGreeting:
		return rules.Greeting(), sourceRule
	case intent.IntentBMI:
		if classified.BMI != nil {
			return rules.CalculateBMI(classified.BMI.Weight, classified.BMI.Height), sourceRule
		}
		return rules.CalculateBMI(0, 0), sourceRule
	case intent.IntentCalorie:
		if classified.Calorie != nil {
			return rules.CalculateCalories(classified.Calorie.Weight, classified.Calorie.Height,
				classified.Calorie.Age, "male", "moderate"), sourceRule
		}
		return rules.CalculateCalories(0, 0, 0, "male", "moderate"), sourceRule
	case intent.IntentFAQ:
		if answer := rules.FAQ(lastUser); answer != "" {
			return answer, sourceRule
		}
	}
	return "", ""
}

func (s *chatServiceImpl) aiAnswer(ctx context.Context, target llm.Target, settings ResolvedSettings,
	messages []request.ChatMessage, lastUser string) (string, error) {
	systemContent := settings.SystemPrompt
	if settings.UseRAG {
		if ragCtx := retrieval.Default().FindRelevantContext(lastUser, 3); ragCtx != "" {
			systemContent = systemContent + "\n\nReference Knowledge:\n" + ragCtx
		}
	}

	msgs := make([]llm.Message, 0, len(messages)+1)
	if systemContent != "" {
		msgs = append(msgs, llm.Message{Role: "system", Content: systemContent})
	}
	for _, m := range messages {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}

	answer, err := s.router.GetCompletion(ctx, target, msgs, settings.Temperature)
	if err != nil {
		zlog.Error("completion failed",
			zap.String("backend", target.BackendName()),
			zap.Error(err))
		return "", err
	}
	return answer, nil
}

// generateTitle 用同一个目标模型生成不超过 5 个词的会话标题。
// 失败返回空串，绝不影响主回答。
func (s *chatServiceImpl) generateTitle(ctx context.Context, target llm.Target, firstMessage string) string {
	prompt := []llm.Message{
		{Role: "system", Content: "You generate very short chat titles."},
		{Role: "user", Content: "Generate a title of 5 words or fewer for a conversation that starts with this message. Do not use quotes or punctuation around the title:\n\n" + firstMessage},
	}
	raw, err := s.router.GetCompletion(ctx, target, prompt, 0.7)
	if err != nil {
		zlog.Warn("title generation failed", zap.String("backend", target.BackendName()), zap.Error(err))
		return ""
	}
	title := strings.TrimSpace(llm.StripReasoning(raw))
	title = strings.Trim(title, titleQuoteTrim)
	if title == "" {
		return ""
	}
	return util.TruncateWithEllipsis(title, maxTitleLen)
}

// reconcile 把本轮结果写回持久化状态：会话补建、用户消息去重、
// 再生成时把旧内容压入版本链、否则追加 assistant 消息行
func (s *chatServiceImpl) reconcile(ctx context.Context, userID string, req request.ChatRequest,
	lastUser, answer, intentName, source, title string, resp *respond.ChatRespond) {
	now := time.Now()

	session, err := s.sessionRepo.GetByID(ctx, req.SessionId)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.Error("session lookup failed", zap.String("sessionId", req.SessionId), zap.Error(err))
		return
	}
	if session == nil {
		sessionTitle := title
		if sessionTitle == "" {
			sessionTitle = "New Chat"
		}
		session = &entity.Session{
			Id:        req.SessionId,
			UserId:    userID,
			Title:     sessionTitle,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if cerr := s.sessionRepo.Create(ctx, session); cerr != nil {
			zlog.Error("session create failed", zap.String("sessionId", req.SessionId), zap.Error(cerr))
			return
		}
	} else {
		if title != "" {
			if uerr := s.sessionRepo.UpdateTitle(ctx, req.SessionId, title); uerr != nil {
				zlog.Warn("session title update failed", zap.String("sessionId", req.SessionId), zap.Error(uerr))
			}
		} else if terr := s.sessionRepo.Touch(ctx, req.SessionId, now); terr != nil {
			zlog.Warn("session touch failed", zap.String("sessionId", req.SessionId), zap.Error(terr))
		}
	}

	if req.RegenerateId != "" {
		s.applyRegeneration(ctx, req, answer, resp)
		return
	}

	// 客户端重试可能把同一条用户消息发两次，窗口内直接复用已存行
	window := time.Duration(config.GetConfig().ChatConfig.DedupWindowSeconds) * time.Second
	userMsg, derr := s.messageRepo.FindRecentDuplicate(ctx, req.SessionId, "user", lastUser, now.Add(-window))
	if derr != nil && !errors.Is(derr, gorm.ErrRecordNotFound) {
		zlog.Error("dedup lookup failed", zap.String("sessionId", req.SessionId), zap.Error(derr))
	}
	if userMsg == nil {
		userMsg = &entity.Message{
			Id:        util.GenerateUUID(),
			SessionId: req.SessionId,
			Role:      "user",
			Content:   lastUser,
			CreatedAt: now,
		}
		if cerr := s.messageRepo.Create(ctx, userMsg); cerr != nil {
			zlog.Error("user message write failed", zap.String("sessionId", req.SessionId), zap.Error(cerr))
			userMsg = nil
		}
	}
	if userMsg != nil {
		item := toMessageItem(userMsg)
		resp.UserMessageObject = &item
	}

	// 请求已取消就不再写 assistant 半边，保证这半边要么完整要么没有
	if ctx.Err() != nil {
		zlog.Warn("request cancelled before assistant persistence", zap.String("sessionId", req.SessionId))
		return
	}

	assistantMsg := &entity.Message{
		Id:        util.GenerateUUID(),
		SessionId: req.SessionId,
		Role:      "assistant",
		Content:   answer,
		Model:     req.Model,
		Source:    source,
		Intent:    intentName,
		CreatedAt: time.Now(),
	}
	if cerr := s.messageRepo.Create(ctx, assistantMsg); cerr != nil {
		zlog.Error("assistant message write failed", zap.String("sessionId", req.SessionId), zap.Error(cerr))
		return
	}
	item := toMessageItem(assistantMsg)
	resp.MessageObject = &item
}

// applyRegeneration 就地替换目标 assistant 消息：当前内容先压入
// versions，再覆盖 content/model。版本链只追加，不丢历史。
func (s *chatServiceImpl) applyRegeneration(ctx context.Context, req request.ChatRequest,
	answer string, resp *respond.ChatRespond) {
	target, err := s.messageRepo.GetByID(ctx, req.RegenerateId)
	if err != nil {
		zlog.Error("regeneration target lookup failed", zap.String("id", req.RegenerateId), zap.Error(err))
		return
	}
	target.Versions = append(target.Versions, entity.MessageVersion{
		Content:   target.Content,
		Model:     target.Model,
		CreatedAt: target.CreatedAt,
	})
	target.Content = answer
	target.Model = req.Model
	target.CreatedAt = time.Now()
	if err := s.messageRepo.Update(ctx, target); err != nil {
		zlog.Error("regeneration write failed", zap.String("id", req.RegenerateId), zap.Error(err))
		return
	}
	item := toMessageItem(target)
	resp.MessageObject = &item
}

func (s *chatServiceImpl) FollowUps(ctx context.Context, req request.FollowUpRequest) []string {
	if len(req.Messages) == 0 {
		return []string{}
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != "assistant" {
		return []string{}
	}

	prompt := []llm.Message{
		{Role: "system", Content: followUpSystemPrompt},
		{Role: "user", Content: "Based on this previous answer:\n\"" + last.Content + "\"\n\nWhat are 3 good follow-up questions for me (the user) to ask?"},
	}
	raw, err := s.router.GetCompletion(ctx, llm.ParseTarget(req.Model), prompt, 0.7)
	if err != nil {
		zlog.Warn("follow-up generation failed", zap.String("model", req.Model), zap.Error(err))
		return []string{}
	}

	cleaned := followUpPreamble.ReplaceAllString(strings.TrimSpace(llm.StripReasoning(raw)), "")
	followUps := make([]string, 0, 3)
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(followUpBullet.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		followUps = append(followUps, line)
		if len(followUps) == 3 {
			break
		}
	}
	return followUps
}

func (s *chatServiceImpl) Unload(ctx context.Context, model string) error {
	return s.router.Unload(ctx, llm.ParseTarget(model))
}

func (s *chatServiceImpl) ListLocalModels(ctx context.Context) ([]llm.LocalModel, error) {
	return s.router.ListLocalModels(ctx)
}

func (s *chatServiceImpl) Suggestions(count int) []string {
	return retrieval.Default().Suggestions(count)
}

func lastUserMessage(messages []request.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

// isFirstExchange 判断这是否会话的第一轮：请求里只有一条 user 消息
// 且没有任何 assistant 回复
func isFirstExchange(messages []request.ChatMessage) bool {
	users := 0
	for _, m := range messages {
		switch m.Role {
		case "assistant":
			return false
		case "user":
			users++
		}
	}
	return users == 1
}
