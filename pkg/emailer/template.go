package emailer

import "html/template"

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #1893A6;">Bem-vindo ao NaSalinha!</h1>
  <p>Olá, <strong>{{.Name}}</strong>!</p>
  <p>Sua conta foi criada com sucesso. Estamos felizes em ter você conosco!</p>
  <p>Comece fazendo seu primeiro check-in e acumule pontos para subir no ranking.</p>
  <p style="margin-top: 30px;">
    <a href="{{.LoginURL}}"
       style="background-color: #1893A6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px;">
      Fazer Login
    </a>
  </p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
  <p style="color: #666; font-size: 12px;">
    NaSalinha - Sistema de Check-in Gamificado<br>
    Comp Júnior
  </p>
</div>
`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #1893A6;">Recuperação de Senha</h1>
  <p>Olá, <strong>{{.Name}}</strong>!</p>
  <p>Você solicitou a recuperação de senha da sua conta NaSalinha.</p>
  <p>Clique no botão abaixo para redefinir sua senha:</p>
  <p style="margin: 30px 0;">
    <a href="{{.ResetURL}}"
       style="background-color: #1893A6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px;">
      Redefinir Senha
    </a>
  </p>
  <p style="color: #666; font-size: 14px;">
    Este link expira em 1 hora.<br>
    Se você não solicitou esta alteração, ignore este e-mail.
  </p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
  <p style="color: #666; font-size: 12px;">
    NaSalinha - Sistema de Check-in Gamificado<br>
    Comp Júnior
  </p>
</div>
`))
