package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"sync"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

var (
	mailService *MailService
	mailOnce    sync.Once
)

// GetMailService 获取单例邮件服务，缺少 SMTP 配置时自动降级为禁用
func GetMailService() *MailService {
	mailOnce.Do(func() {
		mailService = NewMailService()
	})
	return mailService
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("⚠️ MailService disabled: Missing SMTP environment variables.")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: WenDa 通讯员 <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			// 邮件失败不影响主流程
			log.Printf("发送邮件失败: %v", err)
		}
	}()
}

// SendWelcomeEmail 注册成功后的欢迎邮件
func (s *MailService) SendWelcomeEmail(to, username string) {
	subject := "欢迎加入 WenDa 问答社区"
	body := fmt.Sprintf(`
		<p>你好，%s：</p>
		<p>欢迎加入 WenDa。提出你的第一个问题，或者去回答别人的问题赚取声望吧。</p>
	`, username)
	s.sendAsync([]string{to}, subject, body)
}

// SendReplyNotification 评论被回复时的提醒邮件
func (s *MailService) SendReplyNotification(to, actorName, questionTitle, replyText string) {
	subject := fmt.Sprintf("%s 回复了你的评论", actorName)
	body := fmt.Sprintf(`
		<p>%s 在问题「%s」下回复了你的评论：</p>
		<blockquote>%s</blockquote>
	`, actorName, questionTitle, replyText)
	s.sendAsync([]string{to}, subject, body)
}
