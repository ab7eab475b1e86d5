package pkg

import (
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// SendEmailWithAttachment 带附件发送，导出归档用
func SendEmailWithAttachment(cfg SMTPConfig, to, subject, htmlBody, filename string, data []byte) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	m.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}))

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// ResetPasswordHTML 重置密码邮件正文
func ResetPasswordHTML(username, link string, ttl time.Duration) string {
	minM := int(ttl.Minutes())
	return fmt.Sprintf(`<p>您好 %s，</p><p>点击链接重置密码：<a href="%s">%s</a></p><p>链接 %d 分钟内有效，如非本人操作请忽略。</p>`, username, link, link, minM)
}

// ExportReadyHTML 导出完成邮件正文
func ExportReadyHTML(username string, count int64) string {
	return fmt.Sprintf(`<p>您好 %s，</p><p>您的 %d 条帖子已导出完成，归档见附件。</p>`, username, count)
}
