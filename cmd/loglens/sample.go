package main

import "os"

const sampleFileName = "sample_access.log"

// sampleLog is a small Combined Log Format data set covering normal
// traffic, 404s, a scanner user agent, and attack-shaped URLs.
const sampleLog = `192.168.1.100 - - [25/Dec/2023:10:15:32 +0000] "GET /index.html HTTP/1.1" 200 1524 "https://example.com" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
192.168.1.101 - - [25/Dec/2023:10:15:33 +0000] "GET /about.html HTTP/1.1" 200 2341 "https://example.com" "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
192.168.1.102 - - [25/Dec/2023:10:15:34 +0000] "GET /contact.php HTTP/1.1" 200 1876 "-" "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
192.168.1.103 - - [25/Dec/2023:10:15:35 +0000] "GET /old-page.html HTTP/1.1" 404 342 "-" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0.4472.124"
192.168.1.104 - - [25/Dec/2023:10:15:36 +0000] "GET /admin/login HTTP/1.1" 403 512 "-" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Firefox/89.0"
192.168.1.105 - - [25/Dec/2023:10:15:37 +0000] "GET /api/users HTTP/1.1" 200 876 "https://app.example.com" "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/537.36"
192.168.1.100 - - [25/Dec/2023:10:15:38 +0000] "GET /products/item123 HTTP/1.1" 200 1543 "https://example.com" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Edge/91.0.864.59"
192.168.1.106 - - [25/Dec/2023:10:15:39 +0000] "GET /wp-admin HTTP/1.1" 404 321 "-" "sqlmap/1.4.2"
192.168.1.107 - - [25/Dec/2023:10:15:40 +0000] "GET /search?q=<script>alert('xss')</script> HTTP/1.1" 200 765 "-" "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
192.168.1.108 - - [25/Dec/2023:10:15:41 +0000] "GET /../../../etc/passwd HTTP/1.1" 403 498 "-" "Mozilla/5.0 (X11; Linux x86_64)"
192.168.1.109 - - [25/Dec/2023:10:15:42 +0000] "POST /login HTTP/1.1" 200 432 "https://example.com" "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0.4472.124"
192.168.1.110 - - [25/Dec/2023:10:15:43 +0000] "GET /images/logo.png HTTP/1.1" 200 2345 "https://example.com" "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
`

// createSampleLog writes the sample data set to the working directory and
// returns its path.
func createSampleLog() (string, error) {
	if err := os.WriteFile(sampleFileName, []byte(sampleLog), 0644); err != nil {
		return "", err
	}
	return sampleFileName, nil
}
