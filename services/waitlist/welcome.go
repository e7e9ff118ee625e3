package waitlist

const welcomeSubject = "Welcome to Arcus - Your spot is secured"

const welcomeText = `ARCUS

You're on the list.

Thank you for joining the Arcus waitlist. We'll notify you when the collection drops.

---
Follow us:
Instagram: https://www.instagram.com/arcuswear/
TikTok: https://www.tiktok.com/@arcuswear
`

const welcomeHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: #000000; color: #F5F5F0;">
  <table role="presentation" style="width: 100%; border-collapse: collapse;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" style="max-width: 600px; width: 100%; border-collapse: collapse;">
          <tr>
            <td align="center" style="padding: 40px 0 30px 0;">
              <h1 style="margin: 0; font-size: 32px; font-weight: 400; letter-spacing: 2px; color: #F5F5F0;">ARCUS</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 0 30px 40px 30px;">
              <h2 style="margin: 0 0 20px 0; font-size: 24px; font-weight: 400; color: #F5F5F0;">You're on the list.</h2>
              <p style="margin: 0 0 15px 0; font-size: 16px; line-height: 1.6; color: #F5F5F0CC;">Thank you for joining the Arcus waitlist. We'll notify you when the collection drops.</p>
            </td>
          </tr>
          <tr>
            <td align="center" style="padding: 30px 20px; border-top: 1px solid #333333;">
              <p style="margin: 0 0 10px 0; font-size: 14px; color: #F5F5F099;">Follow us</p>
              <a href="https://www.instagram.com/arcuswear/" style="color: #F5F5F0CC; text-decoration: none; margin: 0 10px;">Instagram</a>
              <span style="color: #666666;">|</span>
              <a href="https://www.tiktok.com/@arcuswear" style="color: #F5F5F0CC; text-decoration: none; margin: 0 10px;">TikTok</a>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`
